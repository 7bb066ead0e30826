package store

import "sync"

// keyedLocks is a registry of mutexes keyed by list ID.
//
// It realizes the advisory "lock this list" primitive for embedded
// storage: every position-mutating transaction acquires the owning
// list's mutex before BEGIN and releases it after commit/rollback, so
// concurrent writers to the same list serialize while writers to
// distinct lists never contend.
//
// Entries are created on first use and retained for the life of the
// store. Lock words are two ints each; even long-running processes
// with many lists carry negligible overhead, and retaining them keeps
// acquisition race-free without reference counting.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*sync.Mutex)}
}

// Acquire locks the mutex for key, creating it if needed.
// The returned func releases the lock.
func (k *keyedLocks) Acquire(key string) (release func()) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
