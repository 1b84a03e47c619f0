// Package errgroup drives scoped futures to completion on
// golang.org/x/sync/errgroup goroutines. Futures built on per-context keys
// are safe here: each driving goroutine holds its own storage cell, so
// concurrently running scopes on the same key never interfere.
package errgroup

import (
	"context"

	xerrgroup "golang.org/x/sync/errgroup"

	"github.com/NetPo4ki/go-tasklocal/local"
)

// Drive polls fut until it completes or ctx is cancelled. A pending result
// means "poll again"; there is no waker protocol.
func Drive[R any](ctx context.Context, fut local.Future[R]) (R, error) {
	for {
		if err := ctx.Err(); err != nil {
			var zero R
			return zero, err
		}
		if r, done := fut.Poll(ctx); done {
			return r, nil
		}
	}
}

// Adapt returns a function suitable for errgroup.Group.Go that drives fut to
// completion and stores the result in *out when out is non-nil.
func Adapt[R any](ctx context.Context, fut local.Future[R], out *R) func() error {
	return func() error {
		r, err := Drive(ctx, fut)
		if err != nil {
			return err
		}
		if out != nil {
			*out = r
		}
		return nil
	}
}

// Group runs scoped futures concurrently with fail-fast semantics.
type Group struct {
	g   *xerrgroup.Group
	ctx context.Context
}

// WithContext creates a Group bound to ctx. The returned context is
// cancelled when any driven future fails, which stops the remaining drivers
// at their next step boundary.
func WithContext(ctx context.Context) (*Group, context.Context) {
	g, ctx := xerrgroup.WithContext(ctx)
	return &Group{g: g, ctx: ctx}, ctx
}

// Go drives fut on a new goroutine, storing its result in *out when out is
// non-nil.
func Go[R any](g *Group, fut local.Future[R], out *R) {
	g.g.Go(Adapt(g.ctx, fut, out))
}

// Wait blocks until all driven futures have completed. It returns the first
// non-nil error or nil on success.
func (g *Group) Wait() error {
	return g.g.Wait()
}
