// internal/domain/product/entity.go
package product

import "time"

// Product is a catalog product as returned by the backend API. The cart
// holds copies of this struct as point-in-time snapshots; a snapshot is
// only ever replaced wholesale, never patched field by field.
type Product struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Barcode       string         `json:"barcode,omitempty"`
	SalePrice     int64          `json:"sale_price"` // Unit price in đồng
	StockQuantity int            `json:"stock_quantity"`
	MinStockLevel int            `json:"min_stock_level"`
	IsActive      bool           `json:"is_active"`
	ImageURL      string         `json:"image_url,omitempty"`
	Status        *ProductStatus `json:"product_status,omitempty"`
	CategoryID    string         `json:"category_id,omitempty"`
	Category      *Category      `json:"category,omitempty"`
	VendorID      string         `json:"vendor_id,omitempty"`
	Vendor        *Vendor        `json:"vendor,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ProductStatus is the display availability status maintained by the
// backend ("Còn hàng", "Hết hàng", ...).
type ProductStatus struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category represents a product category
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Vendor represents a wholesale supplier
type Vendor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	IsActive bool   `json:"is_active"`
}
