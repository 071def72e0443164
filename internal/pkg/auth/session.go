// internal/pkg/auth/session.go
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The storefront does not issue or verify tokens; the backend owns
// authentication. It only needs the synchronous capability the checkout
// guard reads: "is this request authenticated right now". That is
// answered locally from the bearer token's claims (presence + expiry);
// the profile itself comes from the auth gateway when a page needs it.

// Claims are the backend token claims the storefront reads. The
// signature is not verified here: the backend rejects forged tokens on
// every real operation, so local inspection only has to answer the
// navigational guard.
type Claims struct {
	UserID string `json:"sub"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Session is one request's authentication state.
type Session struct {
	Token  string
	claims *Claims
}

// NewSession builds a session from the raw bearer token, which may be
// empty for anonymous requests.
func NewSession(token string) Session {
	s := Session{Token: token}
	if token == "" {
		return s
	}

	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return s
	}
	s.claims = &claims
	return s
}

// IsAuthenticated reports whether the request carries a token that has
// not expired. Read synchronously by the checkout guard.
func (s Session) IsAuthenticated() bool {
	if s.claims == nil {
		return false
	}
	if s.claims.ExpiresAt == nil {
		return true
	}
	return s.claims.ExpiresAt.After(time.Now())
}

// UserID returns the token subject, or "" for anonymous sessions.
func (s Session) UserID() string {
	if s.claims == nil {
		return ""
	}
	return s.claims.UserID
}

// ExtractTokenFromHeader pulls the raw token out of an Authorization
// header value, returning "" when the header is not a bearer scheme.
func ExtractTokenFromHeader(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
