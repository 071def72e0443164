// internal/gateway/orders.go
package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/your-org/pharmacy-storefront/internal/domain/order"
)

// OrderGateway wraps the backend order endpoints. All order operations
// run on behalf of the signed-in user and require their bearer token.
type OrderGateway struct {
	client *Client
}

// NewOrderGateway creates an order gateway over the backend client
func NewOrderGateway(client *Client) *OrderGateway {
	return &OrderGateway{client: client}
}

// OrderPage is one page of the user's order history.
type OrderPage struct {
	Data     []order.Order `json:"data"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	Limit    int           `json:"limit"`
	LastPage int           `json:"lastPage"`
}

// CreateOrder submits an order-creation request. A business rejection
// comes back as an *APIError whose Message carries the server's own
// wording; callers surface it verbatim.
func (g *OrderGateway) CreateOrder(ctx context.Context, token string, req order.CreateRequest) (*order.Order, error) {
	var created order.Order
	if err := g.client.do(ctx, http.MethodPost, "/orders", nil, token, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListOrders fetches a page of the user's order history.
func (g *OrderGateway) ListOrders(ctx context.Context, token string, page, limit int) (*OrderPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var result OrderPage
	if err := g.client.do(ctx, http.MethodGet, "/orders", query, token, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOrder fetches one of the user's orders by id.
func (g *OrderGateway) GetOrder(ctx context.Context, token, id string) (*order.Order, error) {
	var o order.Order
	if err := g.client.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, token, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
