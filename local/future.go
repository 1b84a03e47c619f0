package local

import (
	"context"
	"io"
	"time"
)

// A Future is a suspendable computation driven one step at a time by an
// external scheduler. Poll performs one resumption step; it returns
// done=false to signal "still pending, poll again" and done=true with the
// final result. A Future is not safe for concurrent polling.
type Future[R any] interface {
	Poll(ctx context.Context) (result R, done bool)
}

// FutureFunc adapts a step function to the Future interface.
type FutureFunc[R any] func(ctx context.Context) (R, bool)

func (f FutureFunc[R]) Poll(ctx context.Context) (R, bool) { return f(ctx) }

// A ScopedFuture wraps an inner future together with a key and a value to
// install. Every poll re-enters the key's scope before stepping the inner
// future and restores the previous state before returning, so the value
// survives across suspension points while leaving the slot free for
// unrelated scopes in between.
type ScopedFuture[T, R any] struct {
	st    store[T]
	slot  box[T]
	inner Future[R]
	done  bool
}

// Scope pairs inner with value on a per-context key. The value is installed
// for each poll of inner and retained by the wrapper between polls.
func Scope[T, R any](k *Key[T], value T, inner Future[R]) *ScopedFuture[T, R] {
	return &ScopedFuture[T, R]{st: k, slot: box[T]{v: value, set: true}, inner: inner}
}

// ScopeShared pairs inner with value on a shared key. Polling while another
// flow of control holds the key panics with ErrReentrant.
func ScopeShared[T, R any](k *SharedKey[T], value T, inner Future[R]) *ScopedFuture[T, R] {
	return &ScopedFuture[T, R]{st: k, slot: box[T]{v: value, set: true}, inner: inner}
}

// Poll enters the scope, steps the inner future exactly once, and exits the
// scope before returning, on every path. On completion the inner future is
// released and its result returned. Polling a completed or closed future is
// a programming error and panics.
func (f *ScopedFuture[T, R]) Poll(ctx context.Context) (R, bool) {
	if f.done {
		panic("local: scoped future polled after completion")
	}
	exit, err := f.st.enter(&f.slot)
	if err != nil {
		panic(err)
	}
	defer exit()
	var start time.Time
	obs := f.st.observer()
	if obs != nil {
		start = time.Now()
	}
	r, done := f.inner.Poll(ctx)
	if done {
		f.inner = nil
		f.done = true
	}
	if obs != nil {
		obs.FuturePolled(f.st.keyName(), time.Since(start), done)
	}
	return r, done
}

// TakeValue removes and returns the value retained by the wrapper. It
// returns the value at most once; later calls, and calls after the value
// has been taken, report false. Not safe to call concurrently with Poll.
func (f *ScopedFuture[T, R]) TakeValue() (T, bool) {
	if !f.slot.set {
		var zero T
		return zero, false
	}
	v := f.slot.v
	f.slot = box[T]{}
	if obs := f.st.observer(); obs != nil {
		obs.ValueTaken(f.st.keyName())
	}
	return v, true
}

// Close cancels a still-pending future. If the inner future implements
// io.Closer its cleanup runs inside an entered scope, so teardown logic
// observes the same value normal execution saw; afterwards the slot is back
// in its pre-scope state. Close is idempotent and a no-op after completion.
//
// If the scope cannot be re-entered because another flow holds the shared
// slot, the inner future is still closed, without the contextual value, and
// ErrReentrant is returned.
func (f *ScopedFuture[T, R]) Close() error {
	if f.done || f.inner == nil {
		return nil
	}
	inner := f.inner
	f.inner = nil
	f.done = true
	c, ok := inner.(io.Closer)
	exit, err := f.st.enter(&f.slot)
	if err != nil {
		if ok {
			_ = c.Close()
		}
		return err
	}
	defer exit()
	if ok {
		return c.Close()
	}
	return nil
}
