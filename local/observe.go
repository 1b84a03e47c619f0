package local

import "time"

type Option func(*Options)

type Options struct {
	Name     string
	Observer Observer
}

func defaultOptions() Options { return Options{} }

// WithName labels the key in panic messages and observer callbacks.
func WithName(name string) Option { return func(o *Options) { o.Name = name } }

// WithObserver attaches lifecycle hooks to the key.
func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// Observer receives key lifecycle events. Implementations must be safe for
// concurrent use; callbacks run on the goroutine driving the scope.
type Observer interface {
	ScopeEntered(key string)
	ScopeExited(key string)
	FuturePolled(key string, dur time.Duration, done bool)
	ValueTaken(key string)
	ReentrancyRejected(key string)
}
