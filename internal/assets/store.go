package assets

import (
	"sync"

	"github.com/google/uuid"
)

// Store keeps session assets in memory and hands out opaque refs suitable
// for playback URLs. Assets live only as long as the process; nothing is
// persisted to disk.
type Store struct {
	mu     sync.Mutex
	assets map[string]*Asset
}

// NewStore builds an empty session asset store.
func NewStore() *Store {
	return &Store{assets: make(map[string]*Asset)}
}

// Put registers the asset and returns its ref.
func (s *Store) Put(a *Asset) string {
	ref := uuid.NewString()
	s.mu.Lock()
	s.assets[ref] = a
	s.mu.Unlock()
	return ref
}

// Get resolves a ref.
func (s *Store) Get(ref string) (*Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[ref]
	return a, ok
}

// Release drops the asset behind ref. Releasing an unknown ref is a no-op;
// a superseded ref may already be gone.
func (s *Store) Release(ref string) {
	s.mu.Lock()
	delete(s.assets, ref)
	s.mu.Unlock()
}
