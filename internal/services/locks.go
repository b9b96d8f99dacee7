package services

import "sync"

// FarmerLocks serializes mutations to a farmer's derived state. Recompute
// and profile completion take the farmer's lock; activity appends do not.
type FarmerLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewFarmerLocks creates an empty lock table
func NewFarmerLocks() *FarmerLocks {
	return &FarmerLocks{locks: make(map[uint]*sync.Mutex)}
}

func (fl *FarmerLocks) get(id uint) *sync.Mutex {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	l, ok := fl.locks[id]
	if !ok {
		l = &sync.Mutex{}
		fl.locks[id] = l
	}
	return l
}

// Lock acquires the mutex for the given farmer profile id
func (fl *FarmerLocks) Lock(id uint) {
	fl.get(id).Lock()
}

// Unlock releases the mutex for the given farmer profile id
func (fl *FarmerLocks) Unlock(id uint) {
	fl.get(id).Unlock()
}
