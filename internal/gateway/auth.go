// internal/gateway/auth.go
package gateway

import (
	"context"
	"net/http"

	"github.com/your-org/pharmacy-storefront/internal/domain/user"
)

// AuthGateway wraps the backend auth endpoints. The storefront never
// issues or verifies credentials itself; it forwards them and carries
// the returned tokens.
type AuthGateway struct {
	client *Client
}

// NewAuthGateway creates an auth gateway over the backend client
func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Tokens is the backend's login response. The login endpoint returns
// tokens only; the profile comes from a separate Me call.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges credentials for tokens.
func (g *AuthGateway) Login(ctx context.Context, creds Credentials) (*Tokens, error) {
	var tokens Tokens
	if err := g.client.do(ctx, http.MethodPost, "/auth/login", nil, "", creds, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Me resolves the profile of the token's user.
func (g *AuthGateway) Me(ctx context.Context, token string) (*user.Profile, error) {
	var profile user.Profile
	if err := g.client.do(ctx, http.MethodGet, "/auth/me", nil, token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
