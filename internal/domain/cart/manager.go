// internal/domain/cart/manager.go
package cart

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-storefront/internal/infrastructure/storage"
)

// Manager hands out the one Store instance per session so every request
// for a device talks to the same in-memory state machine and its
// subscribers. Idle stores are evicted by Sweep; an evicted store
// rehydrates from its durable record on the next access.
type Manager struct {
	mu      sync.Mutex
	backend storage.Store
	logger  *logrus.Logger
	stores  map[string]*managedStore
}

type managedStore struct {
	store    *Store
	lastSeen time.Time
}

// NewManager creates a cart manager over a durable store backend
func NewManager(backend storage.Store, logger *logrus.Logger) *Manager {
	return &Manager{
		backend: backend,
		logger:  logger,
		stores:  make(map[string]*managedStore),
	}
}

// Store returns the cart store for a session, creating it on first use.
func (m *Manager) Store(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.stores[sessionID]
	if !ok {
		entry = &managedStore{store: NewStore(sessionID, m.backend, m.logger)}
		m.stores[sessionID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.store
}

// Sweep evicts stores that have not been accessed for idle and reports
// how many were dropped. Every cookie-less client mints a fresh session
// id, so without eviction the map grows one permanent entry per device.
// Eviction also forces the next access to re-read the durable record,
// letting records the backend expired fall out instead of being served
// from memory indefinitely.
func (m *Manager) Sweep(idle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for id, entry := range m.stores {
		if time.Since(entry.lastSeen) > idle {
			delete(m.stores, id)
			dropped++
		}
	}
	if dropped > 0 {
		m.logger.WithFields(logrus.Fields{
			"dropped":   dropped,
			"remaining": len(m.stores),
		}).Debug("evicted idle cart stores")
	}
	return dropped
}
