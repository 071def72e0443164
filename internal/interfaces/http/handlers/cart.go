// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-storefront/internal/domain/cart"
	"github.com/your-org/pharmacy-storefront/internal/gateway"
	"github.com/your-org/pharmacy-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/pharmacy-storefront/internal/pkg/notify"
)

// CartHandler exposes the session cart over HTTP.
type CartHandler struct {
	carts      *cart.Manager
	reconciler *cart.Reconciler
	products   *gateway.ProductGateway
	logger     *logrus.Logger
}

// NewCartHandler creates a cart handler
func NewCartHandler(carts *cart.Manager, reconciler *cart.Reconciler, products *gateway.ProductGateway, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		carts:      carts,
		reconciler: reconciler,
		products:   products,
		logger:     logger,
	}
}

// AddItemRequest is the body of POST /cart/items.
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemRequest is the body of PUT /cart/items/:id. Quantity may be
// zero or negative; those are routed to removal.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the cart state for the review screen. Retrieval
// triggers a product refresh against the live catalog first, so the
// prices shown are as fresh as the backend allows; the refresh outcome
// travels back as notices alongside the state.
func (h *CartHandler) GetCart(c *gin.Context) {
	store := h.carts.Store(middleware.GetSessionID(c))

	recorder := notify.NewRecorder()
	// A failed refresh is not a failed cart view: stale snapshots are
	// still a valid cart, the notices tell the user what happened.
	_, _ = h.reconciler.Refresh(c.Request.Context(), store, recorder)

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    store.Snapshot(c.Request.Context()),
		Notices: recorder.Notifications(),
	})
}

// RefreshCart re-runs the product refresh on demand and returns the
// aggregate outcome.
func (h *CartHandler) RefreshCart(c *gin.Context) {
	store := h.carts.Store(middleware.GetSessionID(c))

	recorder := notify.NewRecorder()
	result, err := h.reconciler.Refresh(c.Request.Context(), store, recorder)
	if err != nil {
		c.JSON(http.StatusBadGateway, Response{
			Success: false,
			Error:   "Không thể tải thông tin sản phẩm",
			Notices: recorder.Notifications(),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"result": result,
			"cart":   store.Snapshot(c.Request.Context()),
		},
		Notices: recorder.Notifications(),
	})
}

// AddItem resolves the product against the live catalog and adds it to
// the cart. The resolved snapshot is what the cart stores; it goes
// stale from this moment on.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	p, err := h.products.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		if gateway.IsNotFound(err) {
			ErrorResponse(c, http.StatusNotFound, "Product not found")
			return
		}
		GatewayErrorResponse(c, err)
		return
	}
	if p.StockQuantity <= 0 {
		ErrorResponse(c, http.StatusConflict, "Hết hàng")
		return
	}

	store := h.carts.Store(middleware.GetSessionID(c))
	store.AddItem(c.Request.Context(), *p, req.Quantity)

	SuccessResponse(c, http.StatusOK, "Đã thêm vào giỏ hàng", store.Snapshot(c.Request.Context()))
}

// UpdateItem sets the quantity of one cart line. A quantity at or below
// zero removes the line instead; there is no zero-quantity line state.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID := c.Param("id")

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	store := h.carts.Store(middleware.GetSessionID(c))
	ctx := c.Request.Context()

	if req.Quantity < 1 {
		store.RemoveItem(ctx, productID)
		SuccessResponse(c, http.StatusOK, "Đã xóa khỏi giỏ hàng", store.Snapshot(ctx))
		return
	}

	if !store.UpdateQuantity(ctx, productID, req.Quantity) {
		ErrorResponse(c, http.StatusNotFound, "Item not in cart")
		return
	}
	SuccessResponse(c, http.StatusOK, "Đã cập nhật giỏ hàng", store.Snapshot(ctx))
}

// RemoveItem deletes one cart line. Removing an absent line succeeds;
// the end state is the same.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	store := h.carts.Store(middleware.GetSessionID(c))
	ctx := c.Request.Context()

	store.RemoveItem(ctx, c.Param("id"))
	SuccessResponse(c, http.StatusOK, "Đã xóa khỏi giỏ hàng", store.Snapshot(ctx))
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	store := h.carts.Store(middleware.GetSessionID(c))
	store.Clear(c.Request.Context())

	SuccessResponse(c, http.StatusOK, "Đã xóa giỏ hàng", store.Snapshot(c.Request.Context()))
}

// GetCount returns the total unit count for the header badge. No
// refresh here; the badge only needs quantities, which reconciliation
// never changes.
func (h *CartHandler) GetCount(c *gin.Context) {
	store := h.carts.Store(middleware.GetSessionID(c))
	state := store.Snapshot(c.Request.Context())

	SuccessResponse(c, http.StatusOK, "", gin.H{"count": state.ItemCount})
}
