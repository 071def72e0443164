// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-storefront/internal/domain/product"
	"github.com/your-org/pharmacy-storefront/internal/infrastructure/storage"
	"github.com/your-org/pharmacy-storefront/internal/pkg/currency"
)

// Store is the single source of truth for one device session's cart.
// It hydrates from the durable store on first access, applies mutations
// in memory, and writes the full state back synchronously after every
// mutation so a reload never loses cart contents. All mutations go
// through this one writer; readers get immutable snapshots.
//
// Persistence failures are logged and do not roll back the in-memory
// mutation, matching the fire-and-forget write model of the durable
// local store.
type Store struct {
	mu        sync.Mutex
	sessionID string
	backend   storage.Store
	logger    *logrus.Logger

	hydrated    bool
	lines       []Line
	subscribers []func(State)
}

// NewStore creates a cart store for one session key. Hydration is
// deferred to the first operation so construction never needs a
// context.
func NewStore(sessionID string, backend storage.Store, logger *logrus.Logger) *Store {
	return &Store{
		sessionID: sessionID,
		backend:   backend,
		logger:    logger,
	}
}

// SessionID returns the session key this cart is persisted under.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Subscribe registers a callback invoked with a state snapshot after
// every applied mutation.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Snapshot returns the current cart state with recomputed aggregates.
func (s *Store) Snapshot(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrateLocked(ctx)
	return s.snapshotLocked()
}

// ProductIDs returns the distinct product ids currently in the cart, in
// line order. Used by the reconciliation service to build its batch
// request.
func (s *Store) ProductIDs(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrateLocked(ctx)

	ids := make([]string, len(s.lines))
	for i, line := range s.lines {
		ids[i] = line.Product.ID
	}
	return ids
}

// ItemQuantity returns the quantity of the line for productID, or 0 if
// no such line exists.
func (s *Store) ItemQuantity(ctx context.Context, productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrateLocked(ctx)

	if i := s.indexOfLocked(productID); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

// AddItem adds quantity units of the product to the cart. If a line for
// the product already exists its quantity is incremented and its stored
// snapshot replaced with the passed-in product, so the cart carries the
// price known at add time; reconciliation restores freshness later.
// Quantities below 1 are clamped to 1.
func (s *Store) AddItem(ctx context.Context, p product.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	s.hydrateLocked(ctx)

	if i := s.indexOfLocked(p.ID); i >= 0 {
		s.lines[i].Quantity += quantity
		s.lines[i].Product = p
	} else {
		s.lines = append(s.lines, Line{Product: p, Quantity: quantity})
	}

	s.finishMutationLocked(ctx)
}

// UpdateQuantity sets the quantity of the line for productID. Callers
// must route non-positive quantities to RemoveItem; a quantity below 1
// is rejected here as a no-op. Returns whether the cart changed.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) bool {
	if quantity < 1 {
		return false
	}

	s.mu.Lock()
	s.hydrateLocked(ctx)

	i := s.indexOfLocked(productID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	s.lines[i].Quantity = quantity
	s.finishMutationLocked(ctx)
	return true
}

// RemoveItem deletes the line for productID. Removing an absent id is a
// no-op, not an error. Returns whether a line was removed.
func (s *Store) RemoveItem(ctx context.Context, productID string) bool {
	s.mu.Lock()
	s.hydrateLocked(ctx)

	i := s.indexOfLocked(productID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.finishMutationLocked(ctx)
	return true
}

// Clear empties the cart and persists the empty state.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.hydrateLocked(ctx)

	s.lines = nil
	s.finishMutationLocked(ctx)
}

// UpdateProduct replaces the product snapshot of the line for productID
// with fresh data, preserving the quantity unchanged. If the line no
// longer exists (removed while a refresh was in flight) it does nothing
// and reports false; reconciliation runs against a potentially stale id
// list, so this must never fail loudly.
func (s *Store) UpdateProduct(ctx context.Context, productID string, fresh product.Product) bool {
	s.mu.Lock()
	s.hydrateLocked(ctx)

	i := s.indexOfLocked(productID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	s.lines[i].Product = fresh
	s.finishMutationLocked(ctx)
	return true
}

// indexOfLocked returns the line index for productID, or -1.
func (s *Store) indexOfLocked(productID string) int {
	for i, line := range s.lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() State {
	state := State{Items: make([]Line, len(s.lines))}
	copy(state.Items, s.lines)
	for _, line := range s.lines {
		state.Total += line.Subtotal()
		state.ItemCount += line.Quantity
	}
	state.TotalDisplay = currency.FormatVND(state.Total)
	return state
}

// hydrateLocked loads the persisted record once per store lifetime. A
// missing, corrupt, or version-mismatched record yields an empty cart.
func (s *Store) hydrateLocked(ctx context.Context) {
	if s.hydrated {
		return
	}
	s.hydrated = true

	data, err := s.backend.Load(ctx, s.sessionID)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.WithError(err).WithField("session_id", s.sessionID).
			Error("failed to hydrate cart, starting empty")
		return
	}

	var record persistedCart
	if err := json.Unmarshal(data, &record); err != nil {
		s.logger.WithError(err).WithField("session_id", s.sessionID).
			Warn("corrupt cart record discarded")
		return
	}
	if record.Version != SchemaVersion {
		s.logger.WithFields(logrus.Fields{
			"session_id": s.sessionID,
			"version":    record.Version,
		}).Warn("cart record with unknown schema version discarded")
		return
	}

	// Drop any line a buggy writer left at quantity < 1.
	lines := record.Items[:0]
	for _, line := range record.Items {
		if line.Quantity >= 1 {
			lines = append(lines, line)
		}
	}
	s.lines = lines
}

// finishMutationLocked persists the new state, releases the lock, and
// notifies subscribers. It must be called with the lock held and is the
// single exit path of every mutation.
func (s *Store) finishMutationLocked(ctx context.Context) {
	s.persistLocked(ctx)
	state := s.snapshotLocked()
	subscribers := make([]func(State), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(state)
	}
}

func (s *Store) persistLocked(ctx context.Context) {
	record := persistedCart{Version: SchemaVersion, Items: s.lines}
	data, err := json.Marshal(record)
	if err != nil {
		s.logger.WithError(err).WithField("session_id", s.sessionID).
			Error("failed to serialize cart record")
		return
	}

	if err := s.backend.Save(ctx, s.sessionID, data); err != nil {
		s.logger.WithError(err).WithField("session_id", s.sessionID).
			Error("failed to persist cart record")
	}
}
