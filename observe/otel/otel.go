package otel

import "time"

// Nop is a no-op implementation of the local.Observer interface.
// It serves as a placeholder for an OpenTelemetry-backed observer without
// adding dependencies.
type Nop struct{}

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) ScopeEntered(string)                      {}
func (*Nop) ScopeExited(string)                       {}
func (*Nop) FuturePolled(string, time.Duration, bool) {}
func (*Nop) ValueTaken(string)                        {}
func (*Nop) ReentrancyRejected(string)                {}
