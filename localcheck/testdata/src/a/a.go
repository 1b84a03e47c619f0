package a

import "github.com/NetPo4ki/go-tasklocal/local"

var requestID = local.New[int]()
var tenant = local.NewShared[string]()

func leakingRead() {
	_ = requestID.SyncScope(1, func() error {
		go func() {
			_ = requestID.Get() // want `task-local key requestID does not propagate into spawned goroutines; enter a new scope inside the goroutine`
		}()
		return nil
	})
}

func leakingTryWith() {
	go func() {
		tenant.With(func(string) {}) // want `task-local key tenant does not propagate into spawned goroutines; enter a new scope inside the goroutine`
	}()
}

func rescoped() {
	_ = requestID.SyncScope(1, func() error {
		v := requestID.Get()
		go func() {
			_ = requestID.SyncScope(v, func() error {
				_ = requestID.Get() // re-scoped inside the goroutine
				return nil
			})
		}()
		return nil
	})
}

func declaredInside() {
	go func() {
		k := local.New[string]()
		_ = k.SyncScope("x", func() error {
			_ = k.Get()
			return nil
		})
	}()
}

func readOnSpawningGoroutine() {
	_ = requestID.SyncScope(1, func() error {
		_ = requestID.Get()
		return nil
	})
}
