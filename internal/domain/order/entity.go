// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/pharmacy-storefront/internal/domain/product"
)

// CustomerType distinguishes who the order is billed to.
type CustomerType string

const (
	CustomerIndividual   CustomerType = "INDIVIDUAL"
	CustomerInsurance    CustomerType = "INSURANCE"
	CustomerOrganization CustomerType = "ORGANIZATION"
)

// SaleMethod is the payment channel recorded on the order.
type SaleMethod string

const (
	SaleCash        SaleMethod = "CASH"
	SaleCreditCard  SaleMethod = "CREDIT_CARD"
	SaleInsurance   SaleMethod = "INSURANCE"
	SaleMobileMoney SaleMethod = "MOBILE_MONEY"
)

// Valid reports whether the customer type is one the backend accepts.
func (t CustomerType) Valid() bool {
	switch t {
	case CustomerIndividual, CustomerInsurance, CustomerOrganization:
		return true
	}
	return false
}

// Valid reports whether the sale method is one the backend accepts.
func (m SaleMethod) Valid() bool {
	switch m {
	case SaleCash, SaleCreditCard, SaleInsurance, SaleMobileMoney:
		return true
	}
	return false
}

// Item is a single order line as returned by the backend.
type Item struct {
	ID         string           `json:"id,omitempty"`
	ProductID  string           `json:"productId"`
	Product    *product.Product `json:"product,omitempty"`
	Quantity   int              `json:"quantity"`
	UnitPrice  int64            `json:"unitPrice"`
	TotalPrice int64            `json:"totalPrice"`
}

// Order is a placed order as returned by the backend order service.
type Order struct {
	ID              string       `json:"id"`
	OrderNumber     string       `json:"orderNumber"`
	UserID          string       `json:"userId"`
	CustomerType    CustomerType `json:"customerType"`
	CustomerName    string       `json:"customerName,omitempty"`
	CustomerPhone   string       `json:"customerPhone,omitempty"`
	CustomerAddress string       `json:"customerAddress,omitempty"`
	SaleMethod      SaleMethod   `json:"saleMethod"`
	Subtotal        int64        `json:"subtotal"`
	Tax             int64        `json:"tax"`
	Discount        int64        `json:"discount"`
	Total           int64        `json:"total"`
	IsPaid          bool         `json:"isPaid"`
	IsCompleted     bool         `json:"isCompleted"`
	Items           []Item       `json:"items"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// CreateItem is one line of an order-creation request: the product id
// with the quantity and unit price taken from the cart line's snapshot
// at submission time.
type CreateItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// CreateRequest is the order-creation payload sent to the backend. The
// discount field carries the computed discount amount in đồng; line
// items always carry raw unit prices.
type CreateRequest struct {
	CustomerType    CustomerType `json:"customerType"`
	CustomerName    string       `json:"customerName,omitempty"`
	CustomerPhone   string       `json:"customerPhone,omitempty"`
	CustomerAddress string       `json:"customerAddress,omitempty"`
	SaleMethod      SaleMethod   `json:"saleMethod"`
	Discount        int64        `json:"discount,omitempty"`
	Items           []CreateItem `json:"items"`
}
