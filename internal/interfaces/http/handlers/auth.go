// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-storefront/internal/gateway"
	"github.com/your-org/pharmacy-storefront/internal/interfaces/http/middleware"
)

// AuthHandler proxies authentication to the backend. The storefront
// never stores credentials; it forwards them, hands the tokens to the
// client, and reads them back from the Authorization header.
type AuthHandler struct {
	auth   *gateway.AuthGateway
	logger *logrus.Logger
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(auth *gateway.AuthGateway, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Login exchanges credentials for backend tokens.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds gateway.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	tokens, err := h.auth.Login(c.Request.Context(), creds)
	if err != nil {
		GatewayErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Đăng nhập thành công", tokens)
}

// Me resolves the signed-in user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	session := middleware.GetAuthSession(c)
	if !session.IsAuthenticated() {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.auth.Me(c.Request.Context(), session.Token)
	if err != nil {
		GatewayErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", profile)
}
