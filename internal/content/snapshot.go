package content

import (
	"sync/atomic"
)

// Snapshot hands out the current Store to readers and lets a reloader swap
// in a replacement atomically. Readers always see one complete store; a
// reload is either fully visible or not visible at all.
type Snapshot struct {
	store atomic.Pointer[Store]
}

// NewSnapshot wraps an initial store.
func NewSnapshot(store *Store) *Snapshot {
	s := &Snapshot{}
	s.store.Store(store)
	return s
}

// Current returns the store as of this call. The returned store is
// immutable and safe to read from any goroutine.
func (s *Snapshot) Current() *Store {
	return s.store.Load()
}

// Swap replaces the current store. Only the content watcher calls this,
// and only with a store that already passed validation.
func (s *Snapshot) Swap(store *Store) {
	s.store.Store(store)
}
