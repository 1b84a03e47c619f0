package looper

import (
	"context"
	"errors"
	"testing"

	"github.com/NetPo4ki/go-tasklocal/local"
)

func TestInterleavedSharedScopes(t *testing.T) {
	t.Parallel()
	key := local.NewShared[int]()
	l := New()
	results := make([]int, 2)
	for i, v := range []int{1, 2} {
		steps := 0
		fut := local.ScopeShared(key, v, local.FutureFunc[int](func(context.Context) (int, bool) {
			steps++
			if got := key.Get(); got != v {
				t.Errorf("future %d observed %d at step %d, want %d", i, got, steps, v)
			}
			return key.Get(), steps >= 3
		}))
		Go(l, fut, &results[i])
	}
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0] != 1 || results[1] != 2 {
		t.Fatalf("results = %v, want [1 2]", results)
	}
	if _, err := key.TryGet(); !errors.Is(err, local.ErrNotSet) {
		t.Fatalf("slot not empty after run: %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()
	key := local.NewShared[int]()
	l := New()
	fut := local.ScopeShared(key, 1, local.FutureFunc[int](func(context.Context) (int, bool) {
		return 0, false
	}))
	Go(l, fut, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAddRawStep(t *testing.T) {
	t.Parallel()
	l := New()
	n := 0
	l.Add(func(context.Context) bool {
		n++
		return n >= 4
	})
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Fatalf("step ran %d times, want 4", n)
	}
}
