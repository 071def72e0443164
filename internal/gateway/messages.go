// internal/gateway/messages.go
package gateway

import (
	"context"
	"net/http"
)

// MessageGateway wraps the backend contact-message endpoint used by the
// contact page.
type MessageGateway struct {
	client *Client
}

// NewMessageGateway creates a message gateway over the backend client
func NewMessageGateway(client *Client) *MessageGateway {
	return &MessageGateway{client: client}
}

// Message is a contact-form submission.
type Message struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Content string `json:"content" binding:"required"`
}

// Send submits a contact message.
func (g *MessageGateway) Send(ctx context.Context, msg Message) error {
	return g.client.do(ctx, http.MethodPost, "/messages", nil, "", msg, nil)
}
