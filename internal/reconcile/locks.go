package reconcile

import "sync"

// ownerLocks serializes reconciliation calls per owner. Each engine instance
// covers one entity type, so one lock here is exactly the
// per-owner-per-entity serialization the protocol requires: two concurrent
// batches for the same owner and entity must not race their conflict
// resolutions on the same server id.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the owner's mutex, creating it on first use, and returns the
// matching unlock function. Locks are never evicted; the map grows with the
// number of distinct owners seen by this process, a few dozen bytes each.
func (o *ownerLocks) lock(ownerID int64) func() {
	o.mu.Lock()
	m, ok := o.locks[ownerID]
	if !ok {
		m = &sync.Mutex{}
		o.locks[ownerID] = m
	}
	o.mu.Unlock()

	m.Lock()
	return m.Unlock
}
