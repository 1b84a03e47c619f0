package local

import "errors"

var (
	// ErrNotSet reports a read on a key with no active scope for the
	// calling context. It is the only recoverable failure in this package.
	ErrNotSet = errors.New("local: value not set")

	// ErrReentrant reports an attempt to enter a scope on a shared key while
	// another flow of control is already inside one. It marks a structural
	// misuse and is delivered via panic, never as a return value.
	ErrReentrant = errors.New("local: reentrant access to shared key")
)
