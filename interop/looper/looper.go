// Package looper provides a minimal cooperative driver that steps futures
// in round-robin order on a single goroutine. It is the kind of environment
// shared keys are designed for: at most one scope is active at any instant,
// and the slot is fully restored between steps.
package looper

import (
	"context"

	"github.com/NetPo4ki/go-tasklocal/local"
)

// A Looper owns a set of step functions and runs them to completion on the
// goroutine that calls Run. It is not safe for concurrent use.
type Looper struct {
	steps []func(ctx context.Context) bool
}

func New() *Looper { return &Looper{} }

// Add registers a raw step function. It is stepped on every Run iteration
// until it reports done.
func (l *Looper) Add(step func(ctx context.Context) bool) {
	l.steps = append(l.steps, step)
}

// Go registers fut, storing its result in *out when out is non-nil.
func Go[R any](l *Looper, fut local.Future[R], out *R) {
	l.Add(func(ctx context.Context) bool {
		r, done := fut.Poll(ctx)
		if done && out != nil {
			*out = r
		}
		return done
	})
}

// Run steps every registered future once per iteration until all have
// completed or ctx is done.
func (l *Looper) Run(ctx context.Context) error {
	for len(l.steps) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		live := l.steps[:0]
		for _, step := range l.steps {
			if !step(ctx) {
				live = append(live, step)
			}
		}
		l.steps = live
	}
	return nil
}
