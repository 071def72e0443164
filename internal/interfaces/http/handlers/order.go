// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-storefront/internal/gateway"
	"github.com/your-org/pharmacy-storefront/internal/interfaces/http/middleware"
)

// OrderHandler proxies the signed-in user's order history.
type OrderHandler struct {
	orders *gateway.OrderGateway
	logger *logrus.Logger
}

// NewOrderHandler creates an order handler
func NewOrderHandler(orders *gateway.OrderGateway, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// List fetches a page of the user's order history.
func (h *OrderHandler) List(c *gin.Context) {
	session := middleware.GetAuthSession(c)
	if !session.IsAuthenticated() {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.orders.ListOrders(c.Request.Context(), session.Token, page, limit)
	if err != nil {
		GatewayErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", result)
}

// Get fetches one of the user's orders.
func (h *OrderHandler) Get(c *gin.Context) {
	session := middleware.GetAuthSession(c)
	if !session.IsAuthenticated() {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	o, err := h.orders.GetOrder(c.Request.Context(), session.Token, c.Param("id"))
	if err != nil {
		if gateway.IsNotFound(err) {
			ErrorResponse(c, http.StatusNotFound, "Order not found")
			return
		}
		GatewayErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", o)
}
