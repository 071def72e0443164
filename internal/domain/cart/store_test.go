// internal/domain/cart/store_test.go
package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pharmacy-storefront/internal/domain/product"
	"github.com/your-org/pharmacy-storefront/internal/infrastructure/storage/memory"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testProduct(id string, price int64) product.Product {
	return product.Product{
		ID:            id,
		Name:          "Paracetamol 500mg",
		SalePrice:     price,
		StockQuantity: 100,
		IsActive:      true,
	}
}

func TestStoreAddItem(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", memory.NewStore(), testLogger())

	store.AddItem(ctx, testProduct("p1", 10000), 2)
	store.AddItem(ctx, testProduct("p2", 25000), 1)

	state := store.Snapshot(ctx)
	require.Len(t, state.Items, 2)
	assert.Equal(t, int64(45000), state.Total)
	assert.Equal(t, 3, state.ItemCount)
	assert.Equal(t, "45.000 ₫", state.TotalDisplay)
}

func TestStoreAddItemIncrementsExistingLine(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", memory.NewStore(), testLogger())

	store.AddItem(ctx, testProduct("p1", 10000), 2)
	store.AddItem(ctx, testProduct("p1", 10000), 3)

	state := store.Snapshot(ctx)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 5, state.Items[0].Quantity)
}

func TestStoreAddItemClampsQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", memory.NewStore(), testLogger())

	store.AddItem(ctx, testProduct("p1", 10000), 0)
	store.AddItem(ctx, testProduct("p2", 10000), -5)

	state := store.Snapshot(ctx)
	require.Len(t, state.Items, 2)
	assert.Equal(t, 1, state.Items[0].Quantity)
	assert.Equal(t, 1, state.Items[1].Quantity)
}

func TestStoreUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", memory.NewStore(), testLogger())
	store.AddItem(ctx, testProduct("p1", 10000), 2)

	assert.True(t, store.UpdateQuantity(ctx, "p1", 7))
	assert.Equal(t, 7, store.ItemQuantity(ctx, "p1"))

	// Below 1 is rejected, not applied.
	assert.False(t, store.UpdateQuantity(ctx, "p1", 0))
	assert.Equal(t, 7, store.ItemQuantity(ctx, "p1"))

	// Unknown id is a no-op.
	assert.False(t, store.UpdateQuantity(ctx, "missing", 3))
}

func TestStoreRemoveItem(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", memory.NewStore(), testLogger())
	store.AddItem(ctx, testProduct("p1", 10000), 2)

	assert.True(t, store.RemoveItem(ctx, "p1"))
	assert.True(t, store.Snapshot(ctx).Empty())

	// Removing an absent id succeeds silently.
	assert.False(t, store.RemoveItem(ctx, "p1"))
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	store := NewStore("session-1", backend, testLogger())
	store.AddItem(ctx, testProduct("p1", 10000), 2)

	store.Clear(ctx)
	assert.True(t, store.Snapshot(ctx).Empty())

	// The empty state is persisted, not just in memory.
	rehydrated := NewStore("session-1", backend, testLogger())
	assert.True(t, rehydrated.Snapshot(ctx).Empty())
}

func TestStoreUpdateProductPreservesQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", memory.NewStore(), testLogger())
	store.AddItem(ctx, testProduct("p1", 10000), 4)

	fresh := testProduct("p1", 12000)
	fresh.Name = "Paracetamol 500mg (new)"
	assert.True(t, store.UpdateProduct(ctx, "p1", fresh))

	state := store.Snapshot(ctx)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 4, state.Items[0].Quantity)
	assert.Equal(t, int64(12000), state.Items[0].Product.SalePrice)
	assert.Equal(t, int64(48000), state.Total)
}

func TestStoreUpdateProductMissingLine(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", memory.NewStore(), testLogger())

	assert.False(t, store.UpdateProduct(ctx, "gone", testProduct("gone", 10000)))
	assert.True(t, store.Snapshot(ctx).Empty())
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()

	store := NewStore("session-1", backend, testLogger())
	store.AddItem(ctx, testProduct("p1", 10000), 2)
	store.AddItem(ctx, testProduct("p2", 25000), 1)

	rehydrated := NewStore("session-1", backend, testLogger())
	state := rehydrated.Snapshot(ctx)
	require.Len(t, state.Items, 2)
	assert.Equal(t, int64(45000), state.Total)
	assert.Equal(t, 3, state.ItemCount)
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()

	a := NewStore("session-a", backend, testLogger())
	b := NewStore("session-b", backend, testLogger())
	a.AddItem(ctx, testProduct("p1", 10000), 1)

	assert.False(t, a.Snapshot(ctx).Empty())
	assert.True(t, b.Snapshot(ctx).Empty())
}

func TestStoreDiscardsCorruptRecord(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	require.NoError(t, backend.Save(ctx, "session-1", []byte("{not json")))

	store := NewStore("session-1", backend, testLogger())
	assert.True(t, store.Snapshot(ctx).Empty())
}

func TestStoreDiscardsUnknownSchemaVersion(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()

	record := persistedCart{
		Version: SchemaVersion + 1,
		Items:   []Line{{Product: testProduct("p1", 10000), Quantity: 2}},
	}
	data, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, backend.Save(ctx, "session-1", data))

	store := NewStore("session-1", backend, testLogger())
	assert.True(t, store.Snapshot(ctx).Empty())
}

func TestStoreDropsNonPositiveQuantitiesOnHydration(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()

	record := persistedCart{
		Version: SchemaVersion,
		Items: []Line{
			{Product: testProduct("p1", 10000), Quantity: 0},
			{Product: testProduct("p2", 25000), Quantity: 2},
		},
	}
	data, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, backend.Save(ctx, "session-1", data))

	store := NewStore("session-1", backend, testLogger())
	state := store.Snapshot(ctx)
	require.Len(t, state.Items, 1)
	assert.Equal(t, "p2", state.Items[0].Product.ID)
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", memory.NewStore(), testLogger())

	var seen []State
	store.Subscribe(func(s State) { seen = append(seen, s) })

	store.AddItem(ctx, testProduct("p1", 10000), 1)
	store.UpdateQuantity(ctx, "p1", 3)
	store.RemoveItem(ctx, "p1")

	require.Len(t, seen, 3)
	assert.Equal(t, 1, seen[0].ItemCount)
	assert.Equal(t, 3, seen[1].ItemCount)
	assert.True(t, seen[2].Empty())
}

func TestManagerReturnsSameStorePerSession(t *testing.T) {
	manager := NewManager(memory.NewStore(), testLogger())

	a := manager.Store("session-a")
	assert.Same(t, a, manager.Store("session-a"))
	assert.NotSame(t, a, manager.Store("session-b"))
}

func TestManagerSweepEvictsIdleStores(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	manager := NewManager(backend, testLogger())

	store := manager.Store("session-a")
	store.AddItem(ctx, testProduct("p1", 10000), 2)
	manager.Store("session-b")

	assert.Equal(t, 0, manager.Sweep(time.Hour))

	manager.mu.Lock()
	manager.stores["session-a"].lastSeen = time.Now().Add(-2 * time.Hour)
	manager.mu.Unlock()

	assert.Equal(t, 1, manager.Sweep(time.Hour))

	// The evicted store rehydrates from the durable record; nothing
	// user-visible is lost.
	again := manager.Store("session-a")
	assert.NotSame(t, store, again)
	state := again.Snapshot(ctx)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Quantity)
}

func TestManagerSweepHonorsBackendExpiry(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	manager := NewManager(backend, testLogger())

	store := manager.Store("session-a")
	store.AddItem(ctx, testProduct("p1", 10000), 2)

	// The backend expired the record while the session sat idle. After
	// eviction the cart hydrates empty instead of replaying the cached
	// in-memory state.
	require.NoError(t, backend.Delete(ctx, "session-a"))
	manager.mu.Lock()
	manager.stores["session-a"].lastSeen = time.Now().Add(-2 * time.Hour)
	manager.mu.Unlock()
	manager.Sweep(time.Hour)

	assert.True(t, manager.Store("session-a").Snapshot(ctx).Empty())
}
