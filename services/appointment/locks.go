package appointment

import "sync"

// providerLocks serializes the read-check-write sequence per provider.
// Operations on unrelated providers never contend.
type providerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (pl *providerLocks) forProvider(id string) *sync.Mutex {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if pl.locks == nil {
		pl.locks = make(map[string]*sync.Mutex)
	}
	lock, exists := pl.locks[id]
	if !exists {
		lock = &sync.Mutex{}
		pl.locks[id] = lock
	}
	return lock
}
