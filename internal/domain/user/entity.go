// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"
)

// Profile is the authenticated user's profile as returned by the
// backend auth service. The storefront never stores credentials; it
// only carries this struct alongside the bearer token.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName returns the display name used to prefill checkout forms.
func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
