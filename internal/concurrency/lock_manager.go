package concurrency

import (
	"hash/maphash"
	"sync"
)

// DefaultStripes is the lock count used when NewLockManager is given n <= 0
const DefaultStripes = 256

// LockManager hands out per-key mutexes from a fixed pool. Two keys may share a
// stripe, so a holder must not take a second key's lock while holding one.
type LockManager struct {
	seed    maphash.Seed
	stripes []sync.Mutex
}

// NewLockManager creates a LockManager with n stripes
func NewLockManager(n int) *LockManager {
	if n <= 0 {
		n = DefaultStripes
	}
	return &LockManager{
		seed:    maphash.MakeSeed(),
		stripes: make([]sync.Mutex, n),
	}
}

// GetLock returns the mutex guarding key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	return &lm.stripes[maphash.String(lm.seed, key)%uint64(len(lm.stripes))]
}

// Lock acquires key's mutex and returns the matching unlock
func (lm *LockManager) Lock(key string) (unlock func()) {
	mu := lm.GetLock(key)
	mu.Lock()
	return mu.Unlock
}
