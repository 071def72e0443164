// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-storefront/internal/domain/cart"
	"github.com/your-org/pharmacy-storefront/internal/domain/checkout"
	"github.com/your-org/pharmacy-storefront/internal/gateway"
	"github.com/your-org/pharmacy-storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler exposes the checkout flow over HTTP. The two guards
// are navigational: their failures answer with a redirect target, not
// an error banner.
type CheckoutHandler struct {
	service *checkout.Service
	carts   *cart.Manager
	logger  *logrus.Logger
}

// NewCheckoutHandler creates a checkout handler
func NewCheckoutHandler(service *checkout.Service, carts *cart.Manager, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: service, carts: carts, logger: logger}
}

// GetSummary returns the review-screen price breakdown for the current
// cart and the requested discount percentage.
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	session := middleware.GetAuthSession(c)
	store := h.carts.Store(middleware.GetSessionID(c))
	state := store.Snapshot(c.Request.Context())

	// The confirmation belongs to the cart that was cleared on success:
	// it shows once, and only while the cart is still empty. Revisits
	// fall through to the guards and their empty-cart redirect; a fresh
	// cart gets a fresh review screen.
	if state.Empty() {
		if orderID, done := h.service.Confirmation(store.SessionID()); done {
			c.JSON(http.StatusOK, Response{
				Success: true,
				Data:    gin.H{"completed": true, "order_id": orderID},
			})
			return
		}
	}

	if err := h.service.Guard(session.IsAuthenticated(), state); err != nil {
		h.guardResponse(c, err)
		return
	}

	discount, err := strconv.ParseFloat(c.DefaultQuery("discount", "0"), 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid discount")
		return
	}

	pricing, err := h.service.Quote(state, discount)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"cart":    state,
		"pricing": pricing,
	})
}

// Submit places the order. On success the cart is gone and the response
// carries the confirmed order; on failure the cart is untouched and the
// user may retry from the same review screen.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req checkout.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session := middleware.GetAuthSession(c)
	store := h.carts.Store(middleware.GetSessionID(c))

	created, err := h.service.Submit(c.Request.Context(), session.Token, session.IsAuthenticated(), store, req)
	if err != nil {
		h.submitErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Đặt hàng thành công", created)
}

// guardResponse translates guard failures to redirect answers: sign-in
// first, then a non-empty cart.
func (h *CheckoutHandler) guardResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Authentication required",
			Data:    gin.H{"redirect": "/login"},
		})
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusConflict, Response{
			Success: false,
			Error:   "Cart is empty",
			Data:    gin.H{"redirect": "/cart"},
		})
	default:
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *CheckoutHandler) submitErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrNotAuthenticated), errors.Is(err, checkout.ErrEmptyCart):
		h.guardResponse(c, err)
	case errors.Is(err, checkout.ErrInvalidDiscount):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		ErrorResponse(c, http.StatusConflict, "Order submission already in progress")
	case errors.Is(err, checkout.ErrOrderAlreadyPlaced):
		orderID, _ := h.service.Completed(middleware.GetSessionID(c))
		c.JSON(http.StatusConflict, Response{
			Success: false,
			Error:   "Order already placed",
			Data:    gin.H{"completed": true, "order_id": orderID},
		})
	default:
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) {
			// The backend's own rejection wording, verbatim.
			ErrorResponse(c, apiErr.StatusCode, apiErr.Message)
			return
		}
		ErrorResponse(c, http.StatusBadGateway, checkout.FallbackErrorMessage)
	}
}
