// Package keylock provides per-key mutual exclusion for the record store.
//
// The backing tabular store offers no row-level locking, so the store must
// treat "read revision, compare, write" as atomic for a single product_no.
// A Map hands out one mutex per key on demand and releases it again once no
// caller holds or waits on it, keeping the map bounded by the number of
// records under concurrent mutation rather than the collection size.
package keylock

import "sync"

// Map is a set of named mutexes. The zero value is not usable; use New.
type Map struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty Map.
func New() *Map {
	return &Map{locks: make(map[string]*entry)}
}

// Lock acquires the mutex for key, blocking while another caller holds it.
// The returned function releases the mutex and must be called exactly once.
func (m *Map) Lock(key string) (unlock func()) {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		m.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(m.locks, key)
		}
		m.mu.Unlock()
	}
}
