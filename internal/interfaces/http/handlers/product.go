// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-storefront/internal/gateway"
)

// ProductHandler proxies the catalog browsing endpoints.
type ProductHandler struct {
	products *gateway.ProductGateway
	logger   *logrus.Logger
}

// NewProductHandler creates a product handler
func NewProductHandler(products *gateway.ProductGateway, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// Search runs a paginated catalog search.
func (h *ProductHandler) Search(c *gin.Context) {
	params := gateway.SearchParams{
		Search:     c.Query("search"),
		CategoryID: c.Query("category_id"),
		VendorID:   c.Query("vendor_id"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "12"))

	result, err := h.products.SearchProducts(c.Request.Context(), params)
	if err != nil {
		GatewayErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", result)
}

// Get fetches one product by id.
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if gateway.IsNotFound(err) {
			ErrorResponse(c, http.StatusNotFound, "Product not found")
			return
		}
		GatewayErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", p)
}

// Categories lists all product categories.
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.products.GetCategories(c.Request.Context())
	if err != nil {
		GatewayErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", categories)
}
