package local

import (
	"fmt"
	"sync"

	"github.com/NetPo4ki/go-tasklocal/internal/goid"
)

// box holds zero or one value. Exchanging a box with a caller-owned slot is
// the single storage primitive every scope operation builds on.
type box[T any] struct {
	v   T
	set bool
}

// store is the slot contract shared by Key and SharedKey: enter swaps the
// caller's slot into storage and returns the exit function that swaps it
// back out. Every successful enter must be paired with exactly one exit.
type store[T any] interface {
	enter(slot *box[T]) (exit func(), err error)
	keyName() string
	observer() Observer
}

// A Key is a per-context slot: each goroutine that enters a scope on the key
// holds its own storage cell, so concurrently running scopes never interfere.
// The zero Key is not usable; construct with New.
type Key[T any] struct {
	cells sync.Map // goroutine id (int64) -> *box[T]
	opts  Options
}

// New creates a per-context key for values of type T.
func New[T any](optFns ...Option) *Key[T] {
	k := &Key[T]{opts: defaultOptions()}
	for _, fn := range optFns {
		fn(&k.opts)
	}
	return k
}

func (k *Key[T]) keyName() string    { return k.opts.Name }
func (k *Key[T]) observer() Observer { return k.opts.Observer }

// swap exchanges the cell for goroutine id with *slot. Only the owning
// goroutine may call it for its own id; the registry entry is removed when
// the slot becomes empty so exited goroutines leave nothing behind.
func (k *Key[T]) swap(id int64, slot *box[T]) {
	var cur box[T]
	if v, ok := k.cells.Load(id); ok {
		cur = *v.(*box[T])
	}
	if slot.set {
		k.cells.Store(id, &box[T]{v: slot.v, set: true})
	} else {
		k.cells.Delete(id)
	}
	*slot = cur
}

func (k *Key[T]) enter(slot *box[T]) (func(), error) {
	id := goid.Current()
	k.swap(id, slot)
	if obs := k.opts.Observer; obs != nil {
		obs.ScopeEntered(k.opts.Name)
	}
	return func() {
		k.swap(id, slot)
		if obs := k.opts.Observer; obs != nil {
			obs.ScopeExited(k.opts.Name)
		}
	}, nil
}

// SyncScope installs value for the duration of body on the calling
// goroutine and restores the previous state afterwards, whether body
// returns, fails, or panics. Calls nest: an inner SyncScope on the same key
// shadows the outer value and unwinds layer by layer.
func (k *Key[T]) SyncScope(value T, body func() error) error {
	slot := box[T]{v: value, set: true}
	exit, _ := k.enter(&slot)
	defer exit()
	return body()
}

// TryWith runs fn with the value currently installed for the calling
// goroutine, or returns ErrNotSet if no scope is active.
func (k *Key[T]) TryWith(fn func(T)) error {
	v, ok := k.cells.Load(goid.Current())
	if !ok {
		return ErrNotSet
	}
	b := v.(*box[T])
	if !b.set {
		return ErrNotSet
	}
	fn(b.v)
	return nil
}

// With runs fn with the current value. Calling With outside an active scope
// is a programming error and panics.
func (k *Key[T]) With(fn func(T)) {
	if err := k.TryWith(fn); err != nil {
		panic(unsetMessage(k.opts.Name))
	}
}

// TryGet returns the current value, or ErrNotSet if no scope is active.
func (k *Key[T]) TryGet() (T, error) {
	var out T
	err := k.TryWith(func(v T) { out = v })
	return out, err
}

// Get returns the current value. Calling Get outside an active scope is a
// programming error and panics.
func (k *Key[T]) Get() T {
	v, err := k.TryGet()
	if err != nil {
		panic(unsetMessage(k.opts.Name))
	}
	return v
}

func unsetMessage(name string) string {
	if name == "" {
		return "local: key accessed without an active scope"
	}
	return fmt.Sprintf("local: key %q accessed without an active scope", name)
}
