// internal/domain/cart/entity.go
package cart

import "github.com/your-org/pharmacy-storefront/internal/domain/product"

// SchemaVersion tags persisted cart records so the stored format can
// change later without corrupting carts written by older builds. A
// record with an unknown version hydrates as an empty cart.
const SchemaVersion = 1

// Line pairs one product snapshot with a positive quantity. A cart
// holds at most one line per product id; repeated adds increment the
// existing line instead of duplicating it.
type Line struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns unit sale price times quantity for this line.
func (l Line) Subtotal() int64 {
	return l.Product.SalePrice * int64(l.Quantity)
}

// State is a read-only snapshot of the cart: the ordered lines plus the
// derived aggregates. Total and ItemCount are recomputed from the lines
// on every mutation and are never stored on their own.
type State struct {
	Items        []Line `json:"items"`
	Total        int64  `json:"total"`
	TotalDisplay string `json:"total_display"`
	ItemCount    int    `json:"item_count"`
}

// Empty reports whether the cart has no lines.
func (s State) Empty() bool {
	return len(s.Items) == 0
}

// persistedCart is the durable-store record format. Derived aggregates
// are deliberately absent; they are recomputed on hydration.
type persistedCart struct {
	Version int    `json:"version"`
	Items   []Line `json:"items"`
}
