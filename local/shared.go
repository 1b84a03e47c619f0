package local

import (
	"sync/atomic"

	"github.com/NetPo4ki/go-tasklocal/internal/goid"
)

// A SharedKey is a single process-wide slot guarded against overlapping use,
// intended for single-goroutine cooperative drivers where at most one flow
// of control is inside a scope at a time. Entry from a second goroutine
// while a scope is active panics with ErrReentrant; nested entry from the
// flow already holding the slot is permitted and unwinds layer by layer.
// The zero SharedKey is not usable; construct with NewShared.
type SharedKey[T any] struct {
	val  box[T]
	opts Options

	// holder is the id of the goroutine currently inside a scope, 0 when
	// free. depth counts nested entries and is touched only by the holder.
	holder atomic.Int64
	depth  int
}

// NewShared creates a shared key for values of type T.
func NewShared[T any](optFns ...Option) *SharedKey[T] {
	k := &SharedKey[T]{opts: defaultOptions()}
	for _, fn := range optFns {
		fn(&k.opts)
	}
	return k
}

func (k *SharedKey[T]) keyName() string    { return k.opts.Name }
func (k *SharedKey[T]) observer() Observer { return k.opts.Observer }

// acquire claims the slot for the calling goroutine. It fails immediately on
// contention rather than blocking: a time-overlapping entry from another
// flow is a programming error, not a queueing problem.
func (k *SharedKey[T]) acquire() error {
	id := goid.Current()
	if k.holder.CompareAndSwap(0, id) {
		k.depth = 1
		return nil
	}
	if k.holder.Load() == id {
		k.depth++
		return nil
	}
	if obs := k.opts.Observer; obs != nil {
		obs.ReentrancyRejected(k.opts.Name)
	}
	return ErrReentrant
}

func (k *SharedKey[T]) release() {
	if k.depth--; k.depth == 0 {
		k.holder.Store(0)
	}
}

func (k *SharedKey[T]) enter(slot *box[T]) (func(), error) {
	if err := k.acquire(); err != nil {
		return nil, err
	}
	k.val, *slot = *slot, k.val
	if obs := k.opts.Observer; obs != nil {
		obs.ScopeEntered(k.opts.Name)
	}
	return func() {
		k.val, *slot = *slot, k.val
		k.release()
		if obs := k.opts.Observer; obs != nil {
			obs.ScopeExited(k.opts.Name)
		}
	}, nil
}

// SyncScope installs value for the duration of body and restores the
// previous state afterwards, whether body returns, fails, or panics.
// It panics with ErrReentrant if another goroutine is inside a scope on
// this key; the active value is left undisturbed.
func (k *SharedKey[T]) SyncScope(value T, body func() error) error {
	slot := box[T]{v: value, set: true}
	exit, err := k.enter(&slot)
	if err != nil {
		panic(err)
	}
	defer exit()
	return body()
}

// TryWith runs fn with the value currently installed, or returns ErrNotSet.
// Reads succeed only on the goroutine holding the scope.
func (k *SharedKey[T]) TryWith(fn func(T)) error {
	if k.holder.Load() != goid.Current() || !k.val.set {
		return ErrNotSet
	}
	fn(k.val.v)
	return nil
}

// With runs fn with the current value. Calling With outside an active scope
// is a programming error and panics.
func (k *SharedKey[T]) With(fn func(T)) {
	if err := k.TryWith(fn); err != nil {
		panic(unsetMessage(k.opts.Name))
	}
}

// TryGet returns the current value, or ErrNotSet if no scope is active.
func (k *SharedKey[T]) TryGet() (T, error) {
	var out T
	err := k.TryWith(func(v T) { out = v })
	return out, err
}

// Get returns the current value. Calling Get outside an active scope is a
// programming error and panics.
func (k *SharedKey[T]) Get() T {
	v, err := k.TryGet()
	if err != nil {
		panic(unsetMessage(k.opts.Name))
	}
	return v
}
