// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-storefront/internal/config"
	"github.com/your-org/pharmacy-storefront/internal/domain/cart"
	"github.com/your-org/pharmacy-storefront/internal/domain/order"
	"github.com/your-org/pharmacy-storefront/internal/pkg/currency"
)

// Checkout guard and flow errors. The first two are navigational: the
// HTTP layer answers them with redirects, not error banners.
var (
	ErrNotAuthenticated   = errors.New("user is not authenticated")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidDiscount    = errors.New("discount must be between 0 and 100")
	ErrSubmissionInFlight = errors.New("order submission already in progress")
	ErrOrderAlreadyPlaced = errors.New("order already placed for this cart session")
)

// FallbackErrorMessage is shown when the backend rejects an order
// without a usable message.
const FallbackErrorMessage = "Không thể tạo đơn hàng"

// OrderCreator is the slice of the remote order gateway the checkout
// flow needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, token string, req order.CreateRequest) (*order.Order, error)
}

// Pricing is the checkout price breakdown shown on the review screen.
// Shipping and tax are flat configuration constants; the discount is a
// cart-local percentage. The backend recomputes its own totals from the
// raw line items.
type Pricing struct {
	Subtotal        int64   `json:"subtotal"`
	ShippingFee     int64   `json:"shipping_fee"`
	Tax             int64   `json:"tax"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountAmount  int64   `json:"discount_amount"`
	Total           int64   `json:"total"`
	TotalDisplay    string  `json:"total_display"`
}

// SubmitRequest carries the checkout form fields for one submission.
type SubmitRequest struct {
	CustomerType    order.CustomerType `json:"customerType"`
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerAddress string             `json:"customerAddress"`
	SaleMethod      order.SaleMethod   `json:"saleMethod"`
	DiscountPercent float64            `json:"discount"`
}

// flowState tracks one session's march through the checkout states.
// Once completed it never returns to reviewing for that cart: only a
// fresh, non-empty cart starts the flow over. acknowledged marks the
// confirmation as delivered, so later checkout views fall back to the
// empty-cart redirect instead of re-showing it.
type flowState struct {
	submitting   bool
	completed    bool
	acknowledged bool
	orderID      string
	lastSeen     time.Time
}

// Service runs the checkout flow: the two navigational guards, the
// pricing quote, and the submit-then-clear transition.
type Service struct {
	orders OrderCreator
	cfg    config.CheckoutConfig
	logger *logrus.Logger

	mu    sync.Mutex
	flows map[string]*flowState
}

// NewService creates a checkout service
func NewService(orders OrderCreator, cfg config.CheckoutConfig, logger *logrus.Logger) *Service {
	return &Service{
		orders: orders,
		cfg:    cfg,
		logger: logger,
		flows:  make(map[string]*flowState),
	}
}

// Guard enforces the checkout preconditions in order: authentication
// first, then cart non-emptiness. It returns ErrNotAuthenticated or
// ErrEmptyCart for the HTTP layer to translate into redirects.
func (s *Service) Guard(authenticated bool, state cart.State) error {
	if !authenticated {
		return ErrNotAuthenticated
	}
	if state.Empty() {
		return ErrEmptyCart
	}
	return nil
}

// Quote computes the price breakdown for the review screen.
func (s *Service) Quote(state cart.State, discountPercent float64) (Pricing, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return Pricing{}, ErrInvalidDiscount
	}

	subtotal := state.Total
	tax := int64(math.Round(float64(subtotal) * s.cfg.TaxRate))
	discountAmount := int64(math.Round(float64(subtotal) * discountPercent / 100))
	total := subtotal + s.cfg.ShippingFee + tax - discountAmount

	return Pricing{
		Subtotal:        subtotal,
		ShippingFee:     s.cfg.ShippingFee,
		Tax:             tax,
		DiscountPercent: discountPercent,
		DiscountAmount:  discountAmount,
		Total:           total,
		TotalDisplay:    currency.FormatVND(total),
	}, nil
}

// Completed reports whether this session already placed its order, and
// the order id if so.
func (s *Service) Completed(sessionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[sessionID]
	if !ok || !flow.completed {
		return "", false
	}
	flow.lastSeen = time.Now()
	return flow.orderID, true
}

// Confirmation returns the confirmed order id the first time it is
// asked for after a successful submission. Later calls report nothing,
// so a checkout view revisited after the confirmation was shown falls
// through to its guards and the empty-cart redirect.
func (s *Service) Confirmation(sessionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[sessionID]
	if !ok || !flow.completed || flow.acknowledged {
		return "", false
	}
	flow.acknowledged = true
	flow.lastSeen = time.Now()
	return flow.orderID, true
}

// Sweep drops flow state that has not been touched for idle, so the
// per-session map does not grow for the life of the process. Flows are
// transient by design; an evicted completed flow just means the
// confirmation is no longer replayable after the idle window.
func (s *Service) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, flow := range s.flows {
		if !flow.submitting && time.Since(flow.lastSeen) > idle {
			delete(s.flows, id)
			dropped++
		}
	}
	return dropped
}

// Submit builds the order payload from the current cart lines and
// invokes order creation exactly once per accepted call; a second call
// while one is in flight is rejected. On success the cart is cleared
// and the flow enters its terminal confirmation state. On any failure
// the cart is left untouched so the user may retry.
func (s *Service) Submit(ctx context.Context, token string, authenticated bool, store *cart.Store, req SubmitRequest) (*order.Order, error) {
	state := store.Snapshot(ctx)

	flow, err := s.begin(store.SessionID(), state)
	if err != nil {
		return nil, err
	}
	defer s.end(flow)

	if err := s.Guard(authenticated, state); err != nil {
		return nil, err
	}

	pricing, err := s.Quote(state, req.DiscountPercent)
	if err != nil {
		return nil, err
	}

	payload, err := buildCreateRequest(state, req, pricing.DiscountAmount)
	if err != nil {
		return nil, err
	}

	created, err := s.orders.CreateOrder(ctx, token, payload)
	if err != nil {
		s.logger.WithError(err).WithField("session_id", store.SessionID()).
			Warn("order submission failed, cart preserved")
		return nil, err
	}
	if created == nil || created.ID == "" {
		return nil, errors.New(FallbackErrorMessage)
	}

	// Only a confirmed order id clears the cart.
	store.Clear(ctx)

	s.mu.Lock()
	flow.completed = true
	flow.orderID = created.ID
	flow.lastSeen = time.Now()
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"session_id": store.SessionID(),
		"order_id":   created.ID,
		"items":      len(payload.Items),
		"total":      pricing.Total,
	}).Info("order placed")

	return created, nil
}

// begin transitions the flow into submitting, refusing re-entry. A
// completed flow belongs to the cart that was cleared on success; when
// the session holds a fresh, non-empty cart again the old flow is
// discarded and checkout starts over.
func (s *Service) begin(sessionID string, state cart.State) (*flowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[sessionID]
	if !ok {
		flow = &flowState{}
		s.flows[sessionID] = flow
	}
	if flow.completed {
		if state.Empty() {
			return nil, ErrOrderAlreadyPlaced
		}
		*flow = flowState{}
	}
	if flow.submitting {
		return nil, ErrSubmissionInFlight
	}
	flow.submitting = true
	flow.lastSeen = time.Now()
	return flow, nil
}

func (s *Service) end(flow *flowState) {
	s.mu.Lock()
	flow.submitting = false
	s.mu.Unlock()
}

// buildCreateRequest derives the order payload from the cart snapshot
// taken at submission time: product id, quantity and the unit price
// held in each line's snapshot, not re-fetched.
func buildCreateRequest(state cart.State, req SubmitRequest, discountAmount int64) (order.CreateRequest, error) {
	customerType := req.CustomerType
	if customerType == "" {
		customerType = order.CustomerIndividual
	}
	saleMethod := req.SaleMethod
	if saleMethod == "" {
		saleMethod = order.SaleCash
	}
	if !customerType.Valid() {
		return order.CreateRequest{}, fmt.Errorf("invalid customer type %q", req.CustomerType)
	}
	if !saleMethod.Valid() {
		return order.CreateRequest{}, fmt.Errorf("invalid sale method %q", req.SaleMethod)
	}

	items := make([]order.CreateItem, len(state.Items))
	for i, line := range state.Items {
		items[i] = order.CreateItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.SalePrice,
		}
	}

	return order.CreateRequest{
		CustomerType:    customerType,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		SaleMethod:      saleMethod,
		Discount:        discountAmount,
		Items:           items,
	}, nil
}
