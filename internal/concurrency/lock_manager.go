package concurrency

import (
	"context"
	"sync"
)

// LockManager serializes work per key. Services key it by character ID so
// read-compute-write cycles on one character never interleave, while
// different characters proceed in parallel.
//
// Each key owns a one-slot channel rather than a mutex so that waiting can
// be abandoned when a request context ends.
type LockManager struct {
	slots sync.Map // key -> chan struct{}
}

func NewLockManager() *LockManager {
	return &LockManager{}
}

func (lm *LockManager) slot(key string) chan struct{} {
	ch, _ := lm.slots.LoadOrStore(key, make(chan struct{}, 1))
	return ch.(chan struct{})
}

// Lock blocks until key is free and returns the release function.
// Calling the release more than once is harmless.
func (lm *LockManager) Lock(key string) func() {
	ch := lm.slot(key)
	ch <- struct{}{}
	return releaser(ch)
}

// LockContext is Lock that gives up when ctx is done
func (lm *LockManager) LockContext(ctx context.Context, key string) (func(), error) {
	ch := lm.slot(key)
	select {
	case ch <- struct{}{}:
		return releaser(ch), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryLock acquires key only if nobody holds it
func (lm *LockManager) TryLock(key string) (func(), bool) {
	ch := lm.slot(key)
	select {
	case ch <- struct{}{}:
		return releaser(ch), true
	default:
		return nil, false
	}
}

func releaser(ch chan struct{}) func() {
	var once sync.Once
	return func() { once.Do(func() { <-ch }) }
}
