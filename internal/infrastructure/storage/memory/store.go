// internal/infrastructure/storage/memory/store.go
package memory

import (
	"context"
	"sync"

	"github.com/your-org/pharmacy-storefront/internal/infrastructure/storage"
)

// Store is an in-process cart store. Carts survive reloads of the UI
// but not restarts of the storefront; it exists for tests and for
// single-instance deployments without Redis or Postgres.
type Store struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewStore creates an in-memory cart store
func NewStore() *Store {
	return &Store{records: make(map[string][]byte)}
}

// Load retrieves the serialized cart record for a session
func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.records[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save writes the serialized cart record for a session
func (s *Store) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.records[key] = stored
	return nil
}

// Delete removes the cart record for a session
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}
