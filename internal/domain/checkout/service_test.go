// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pharmacy-storefront/internal/config"
	"github.com/your-org/pharmacy-storefront/internal/domain/cart"
	"github.com/your-org/pharmacy-storefront/internal/domain/order"
	"github.com/your-org/pharmacy-storefront/internal/domain/product"
	"github.com/your-org/pharmacy-storefront/internal/gateway"
	"github.com/your-org/pharmacy-storefront/internal/infrastructure/storage/memory"
)

type fakeOrderCreator struct {
	created *order.Order
	err     error
	calls   int
	lastReq order.CreateRequest
}

func (f *fakeOrderCreator) CreateOrder(_ context.Context, _ string, req order.CreateRequest) (*order.Order, error) {
	f.calls++
	f.lastReq = req
	return f.created, f.err
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testService(orders OrderCreator) *Service {
	return NewService(orders, config.CheckoutConfig{}, testLogger())
}

func testCart(t *testing.T) (*cart.Store, *memory.Store) {
	t.Helper()
	backend := memory.NewStore()
	store := cart.NewStore("session-1", backend, testLogger())
	store.AddItem(context.Background(), product.Product{
		ID:            "p1",
		Name:          "Amoxicillin 250mg",
		SalePrice:     25000,
		StockQuantity: 50,
	}, 2)
	return store, backend
}

func TestGuard(t *testing.T) {
	svc := testService(&fakeOrderCreator{})

	filled := cart.State{Items: []cart.Line{{Quantity: 1}}}

	assert.ErrorIs(t, svc.Guard(false, filled), ErrNotAuthenticated)
	assert.ErrorIs(t, svc.Guard(true, cart.State{}), ErrEmptyCart)
	assert.NoError(t, svc.Guard(true, filled))

	// Authentication is checked before cart contents.
	assert.ErrorIs(t, svc.Guard(false, cart.State{}), ErrNotAuthenticated)
}

func TestQuote(t *testing.T) {
	svc := testService(&fakeOrderCreator{})

	pricing, err := svc.Quote(cart.State{Total: 50000}, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), pricing.Subtotal)
	assert.Equal(t, int64(5000), pricing.DiscountAmount)
	assert.Equal(t, int64(0), pricing.Tax)
	assert.Equal(t, int64(45000), pricing.Total)
	assert.Equal(t, "45.000 ₫", pricing.TotalDisplay)

	pricing, err = svc.Quote(cart.State{Total: 50000}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), pricing.Total)
}

func TestQuoteWithTaxAndShipping(t *testing.T) {
	svc := NewService(&fakeOrderCreator{}, config.CheckoutConfig{
		ShippingFee: 15000,
		TaxRate:     0.08,
	}, testLogger())

	pricing, err := svc.Quote(cart.State{Total: 100000}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(8000), pricing.Tax)
	assert.Equal(t, int64(123000), pricing.Total)
}

func TestQuoteRejectsInvalidDiscount(t *testing.T) {
	svc := testService(&fakeOrderCreator{})

	_, err := svc.Quote(cart.State{Total: 50000}, -1)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	_, err = svc.Quote(cart.State{Total: 50000}, 101)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	ctx := context.Background()
	store, _ := testCart(t)

	creator := &fakeOrderCreator{created: &order.Order{ID: "order-42"}}
	svc := testService(creator)

	created, err := svc.Submit(ctx, "token", true, store, SubmitRequest{DiscountPercent: 10})
	require.NoError(t, err)
	assert.Equal(t, "order-42", created.ID)

	assert.True(t, store.Snapshot(ctx).Empty())

	orderID, done := svc.Completed("session-1")
	assert.True(t, done)
	assert.Equal(t, "order-42", orderID)
}

func TestSubmitBuildsPayloadFromCartLines(t *testing.T) {
	ctx := context.Background()
	store, _ := testCart(t)

	creator := &fakeOrderCreator{created: &order.Order{ID: "order-42"}}
	svc := testService(creator)

	_, err := svc.Submit(ctx, "token", true, store, SubmitRequest{
		CustomerName:    "Nguyễn Văn A",
		DiscountPercent: 10,
	})
	require.NoError(t, err)

	require.Equal(t, 1, creator.calls)
	req := creator.lastReq
	assert.Equal(t, order.CustomerIndividual, req.CustomerType)
	assert.Equal(t, order.SaleCash, req.SaleMethod)
	assert.Equal(t, "Nguyễn Văn A", req.CustomerName)
	assert.Equal(t, int64(5000), req.Discount)
	require.Len(t, req.Items, 1)
	assert.Equal(t, order.CreateItem{ProductID: "p1", Quantity: 2, UnitPrice: 25000}, req.Items[0])
}

func TestSubmitFailurePreservesCart(t *testing.T) {
	ctx := context.Background()
	store, backend := testCart(t)

	before, err := backend.Load(ctx, "session-1")
	require.NoError(t, err)

	creator := &fakeOrderCreator{err: &gateway.APIError{StatusCode: 409, Message: "Hết hàng"}}
	svc := testService(creator)

	_, err = svc.Submit(ctx, "token", true, store, SubmitRequest{})
	require.EqualError(t, err, "Hết hàng")

	// The cart contents and its persisted record are untouched.
	assert.False(t, store.Snapshot(ctx).Empty())
	after, loadErr := backend.Load(ctx, "session-1")
	require.NoError(t, loadErr)
	assert.Equal(t, before, after)

	// The flow is retryable after a failure.
	creator.err = nil
	creator.created = &order.Order{ID: "order-43"}
	created, err := svc.Submit(ctx, "token", true, store, SubmitRequest{})
	require.NoError(t, err)
	assert.Equal(t, "order-43", created.ID)
}

func TestSubmitRejectsMissingOrderID(t *testing.T) {
	ctx := context.Background()
	store, _ := testCart(t)

	creator := &fakeOrderCreator{created: &order.Order{}}
	svc := testService(creator)

	_, err := svc.Submit(ctx, "token", true, store, SubmitRequest{})
	require.EqualError(t, err, FallbackErrorMessage)
	assert.False(t, store.Snapshot(ctx).Empty())
}

func TestSubmitGuards(t *testing.T) {
	ctx := context.Background()
	store, _ := testCart(t)

	creator := &fakeOrderCreator{}
	svc := testService(creator)

	_, err := svc.Submit(ctx, "", false, store, SubmitRequest{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	empty := cart.NewStore("session-2", memory.NewStore(), testLogger())
	_, err = svc.Submit(ctx, "token", true, empty, SubmitRequest{})
	assert.ErrorIs(t, err, ErrEmptyCart)

	assert.Equal(t, 0, creator.calls)
}

func TestSubmitRejectsInvalidFormValues(t *testing.T) {
	ctx := context.Background()
	store, _ := testCart(t)

	creator := &fakeOrderCreator{}
	svc := testService(creator)

	_, err := svc.Submit(ctx, "token", true, store, SubmitRequest{CustomerType: "COMPANY"})
	assert.Error(t, err)

	_, err = svc.Submit(ctx, "token", true, store, SubmitRequest{SaleMethod: "BARTER"})
	assert.Error(t, err)

	_, err = svc.Submit(ctx, "token", true, store, SubmitRequest{DiscountPercent: 150})
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	assert.Equal(t, 0, creator.calls)
}

func TestSubmitRefusesResubmitOfClearedCart(t *testing.T) {
	ctx := context.Background()
	store, _ := testCart(t)

	creator := &fakeOrderCreator{created: &order.Order{ID: "order-42"}}
	svc := testService(creator)

	_, err := svc.Submit(ctx, "token", true, store, SubmitRequest{})
	require.NoError(t, err)

	// The order consumed this cart; a replayed submit must not place a
	// second one.
	_, err = svc.Submit(ctx, "token", true, store, SubmitRequest{})
	assert.ErrorIs(t, err, ErrOrderAlreadyPlaced)
	assert.Equal(t, 1, creator.calls)
}

func TestSubmitFreshCartAfterOrder(t *testing.T) {
	ctx := context.Background()
	store, _ := testCart(t)

	creator := &fakeOrderCreator{created: &order.Order{ID: "order-42"}}
	svc := testService(creator)

	_, err := svc.Submit(ctx, "token", true, store, SubmitRequest{})
	require.NoError(t, err)

	// A new cart on the same device starts the flow over; the session
	// cookie outlives any single order.
	store.AddItem(ctx, product.Product{ID: "p2", SalePrice: 5000, StockQuantity: 10}, 1)
	creator.created = &order.Order{ID: "order-43"}

	created, err := svc.Submit(ctx, "token", true, store, SubmitRequest{})
	require.NoError(t, err)
	assert.Equal(t, "order-43", created.ID)
	assert.Equal(t, 2, creator.calls)
	assert.True(t, store.Snapshot(ctx).Empty())

	orderID, done := svc.Completed("session-1")
	assert.True(t, done)
	assert.Equal(t, "order-43", orderID)
}

func TestConfirmationReportsOnce(t *testing.T) {
	ctx := context.Background()
	store, _ := testCart(t)

	creator := &fakeOrderCreator{created: &order.Order{ID: "order-42"}}
	svc := testService(creator)

	_, err := svc.Submit(ctx, "token", true, store, SubmitRequest{})
	require.NoError(t, err)

	orderID, ok := svc.Confirmation("session-1")
	assert.True(t, ok)
	assert.Equal(t, "order-42", orderID)

	_, ok = svc.Confirmation("session-1")
	assert.False(t, ok)

	// Completed stays readable for the duplicate-submit answer.
	orderID, done := svc.Completed("session-1")
	assert.True(t, done)
	assert.Equal(t, "order-42", orderID)
}

func TestServiceSweep(t *testing.T) {
	ctx := context.Background()
	store, _ := testCart(t)

	creator := &fakeOrderCreator{created: &order.Order{ID: "order-42"}}
	svc := testService(creator)

	_, err := svc.Submit(ctx, "token", true, store, SubmitRequest{})
	require.NoError(t, err)

	assert.Equal(t, 0, svc.Sweep(time.Hour))

	svc.mu.Lock()
	svc.flows["session-1"].lastSeen = time.Now().Add(-2 * time.Hour)
	svc.mu.Unlock()

	assert.Equal(t, 1, svc.Sweep(time.Hour))
	_, done := svc.Completed("session-1")
	assert.False(t, done)
}
