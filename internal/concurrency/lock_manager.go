// Package concurrency provides keyed locks.
package concurrency

import (
	"sync"
)

// LockManager hands out one read/write lock per key. Locks are created on
// first use and never freed, so keys should come from a small set such as
// save slot names.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the lock for the given key
func (lm *LockManager) GetLock(key string) *sync.RWMutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.RWMutex{})
	return lock.(*sync.RWMutex)
}

// WithLock runs fn holding the key's write lock
func (lm *LockManager) WithLock(key string, fn func() error) error {
	l := lm.GetLock(key)
	l.Lock()
	defer l.Unlock()
	return fn()
}

// WithRLock runs fn holding the key's read lock
func (lm *LockManager) WithRLock(key string, fn func() error) error {
	l := lm.GetLock(key)
	l.RLock()
	defer l.RUnlock()
	return fn()
}
