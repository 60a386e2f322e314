package credential

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// MemorySource is a settable in-process credential source for hosts that run
// without persistent storage. It seeds from an optional initial key and
// accepts updates from the credential endpoint, so a key supplied at runtime
// survives gate re-syncs for the life of the process.
type MemorySource struct {
	mu  sync.Mutex
	key string
}

// NewMemorySource builds a memory source seeded with key, which may be empty.
func NewMemorySource(key string) *MemorySource {
	return &MemorySource{key: strings.TrimSpace(key)}
}

// APIKey returns the current key; "" means no credential yet.
func (s *MemorySource) APIKey(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key, nil
}

// SetAPIKey replaces the stored key.
func (s *MemorySource) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("api key is required")
	}
	s.mu.Lock()
	s.key = key
	s.mu.Unlock()
	return nil
}

var _ Source = (*MemorySource)(nil)
