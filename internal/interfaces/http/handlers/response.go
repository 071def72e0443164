// internal/interfaces/http/handlers/response.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pharmacy-storefront/internal/gateway"
	"github.com/your-org/pharmacy-storefront/internal/pkg/notify"
)

// Response is the JSON envelope every handler answers with.
type Response struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Data    interface{}           `json:"data,omitempty"`
	Error   string                `json:"error,omitempty"`
	Notices []notify.Notification `json:"notices,omitempty"`
}

// SuccessResponse sends a success response with data
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   message,
	})
}

// GatewayErrorResponse translates a backend call failure. Business
// rejections keep the backend's own status and message so server
// wording ("Hết hàng", ...) reaches the user verbatim; transport
// failures become a 502.
func GatewayErrorResponse(c *gin.Context, err error) {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		ErrorResponse(c, apiErr.StatusCode, apiErr.Message)
		return
	}
	ErrorResponse(c, http.StatusBadGateway, "Backend unavailable")
}
