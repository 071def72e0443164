// internal/domain/cart/reconcile_test.go
package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pharmacy-storefront/internal/domain/product"
	"github.com/your-org/pharmacy-storefront/internal/infrastructure/storage/memory"
	"github.com/your-org/pharmacy-storefront/internal/pkg/notify"
)

type fakeFetcher struct {
	products []product.Product
	err      error
	calls    int
	lastIDs  []string
}

func (f *fakeFetcher) FetchProductsByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	f.calls++
	f.lastIDs = ids
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func TestRefreshUpdatesAllLines(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", memory.NewStore(), testLogger())
	store.AddItem(ctx, testProduct("p1", 10000), 2)
	store.AddItem(ctx, testProduct("p2", 25000), 1)

	fetcher := &fakeFetcher{products: []product.Product{
		testProduct("p1", 11000),
		testProduct("p2", 20000),
	}}
	recorder := notify.NewRecorder()

	result, err := NewReconciler(fetcher, testLogger()).Refresh(ctx, store, recorder)
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{Updated: 2, Failed: 0}, result)

	// One batch request for the whole cart, never one per item.
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, []string{"p1", "p2"}, fetcher.lastIDs)

	state := store.Snapshot(ctx)
	assert.Equal(t, int64(11000), state.Items[0].Product.SalePrice)
	assert.Equal(t, int64(20000), state.Items[1].Product.SalePrice)
	assert.Equal(t, 2, state.Items[0].Quantity)

	notices := recorder.Notifications()
	require.Len(t, notices, 1)
	assert.Equal(t, notify.LevelSuccess, notices[0].Level)
	assert.Equal(t, "Đã cập nhật 2 sản phẩm", notices[0].Message)
}

func TestRefreshCountsMissingProductsAsFailed(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", memory.NewStore(), testLogger())
	store.AddItem(ctx, testProduct("p1", 10000), 2)
	store.AddItem(ctx, testProduct("p2", 25000), 1)
	store.AddItem(ctx, testProduct("p3", 5000), 1)

	// The backend only knows two of the three requested products.
	fetcher := &fakeFetcher{products: []product.Product{
		testProduct("p1", 11000),
		testProduct("p3", 6000),
	}}
	recorder := notify.NewRecorder()

	result, err := NewReconciler(fetcher, testLogger()).Refresh(ctx, store, recorder)
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{Updated: 2, Failed: 1}, result)

	// The stale snapshot stays in place for the missing product.
	state := store.Snapshot(ctx)
	assert.Equal(t, int64(25000), state.Items[1].Product.SalePrice)

	notices := recorder.Notifications()
	require.Len(t, notices, 2)
	assert.Equal(t, notify.LevelSuccess, notices[0].Level)
	assert.Equal(t, "Đã cập nhật 2 sản phẩm", notices[0].Message)
	assert.Equal(t, notify.LevelWarning, notices[1].Level)
	assert.Equal(t, "Không thể cập nhật 1 sản phẩm", notices[1].Message)
}

func TestRefreshBatchFailureKeepsSnapshots(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", memory.NewStore(), testLogger())
	store.AddItem(ctx, testProduct("p1", 10000), 2)

	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	recorder := notify.NewRecorder()

	_, err := NewReconciler(fetcher, testLogger()).Refresh(ctx, store, recorder)
	require.Error(t, err)

	state := store.Snapshot(ctx)
	assert.Equal(t, int64(10000), state.Items[0].Product.SalePrice)

	notices := recorder.Notifications()
	require.Len(t, notices, 1)
	assert.Equal(t, notify.LevelError, notices[0].Level)
	assert.Contains(t, notices[0].Message, "Không thể tải thông tin sản phẩm")
}

func TestRefreshEmptyCartSkipsFetch(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", memory.NewStore(), testLogger())

	fetcher := &fakeFetcher{}
	recorder := notify.NewRecorder()

	result, err := NewReconciler(fetcher, testLogger()).Refresh(ctx, store, recorder)
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{}, result)
	assert.Equal(t, 0, fetcher.calls)
	assert.Empty(t, recorder.Notifications())
}

type blockingFetcher struct {
	products []product.Product
	started  chan struct{}
	proceed  chan struct{}
}

func (f *blockingFetcher) FetchProductsByIDs(_ context.Context, _ []string) ([]product.Product, error) {
	f.started <- struct{}{}
	<-f.proceed
	return f.products, nil
}

func TestRefreshConcurrentCallersAllGetNotices(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", memory.NewStore(), testLogger())
	store.AddItem(ctx, testProduct("p1", 10000), 1)

	fetcher := &blockingFetcher{
		products: []product.Product{testProduct("p1", 11000)},
		started:  make(chan struct{}, 2),
		proceed:  make(chan struct{}),
	}
	reconciler := NewReconciler(fetcher, testLogger())

	recorders := [2]*notify.Recorder{notify.NewRecorder(), notify.NewRecorder()}
	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func(rec *notify.Recorder) {
			_, err := reconciler.Refresh(ctx, store, rec)
			done <- err
		}(recorders[i])
	}

	<-fetcher.started
	close(fetcher.proceed)
	require.NoError(t, <-done)
	require.NoError(t, <-done)

	// Whether the second caller joined the in-flight run or ran its
	// own, its response must carry the outcome.
	for _, rec := range recorders {
		notices := rec.Notifications()
		require.Len(t, notices, 1)
		assert.Equal(t, notify.LevelSuccess, notices[0].Level)
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", memory.NewStore(), testLogger())
	store.AddItem(ctx, testProduct("p1", 10000), 3)

	fetcher := &fakeFetcher{products: []product.Product{testProduct("p1", 11000)}}
	reconciler := NewReconciler(fetcher, testLogger())

	_, err := reconciler.Refresh(ctx, store, notify.NewRecorder())
	require.NoError(t, err)
	first := store.Snapshot(ctx)

	_, err = reconciler.Refresh(ctx, store, notify.NewRecorder())
	require.NoError(t, err)
	second := store.Snapshot(ctx)

	assert.Equal(t, first, second)
}
