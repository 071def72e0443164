// internal/interfaces/http/handlers/message.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-storefront/internal/gateway"
)

// MessageHandler proxies contact-form submissions.
type MessageHandler struct {
	messages *gateway.MessageGateway
	logger   *logrus.Logger
}

// NewMessageHandler creates a message handler
func NewMessageHandler(messages *gateway.MessageGateway, logger *logrus.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, logger: logger}
}

// Send submits a contact message.
func (h *MessageHandler) Send(c *gin.Context) {
	var msg gateway.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Name, email and content are required")
		return
	}

	if err := h.messages.Send(c.Request.Context(), msg); err != nil {
		GatewayErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Đã gửi tin nhắn", nil)
}
