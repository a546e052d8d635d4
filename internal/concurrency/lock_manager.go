package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key. Keys are farm addresses; the map
// grows with the number of distinct players seen by the process.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Lock acquires key's mutex and returns its release func
func (lm *LockManager) Lock(key string) func() {
	mu := lm.GetLock(key)
	mu.Lock()
	return mu.Unlock
}
