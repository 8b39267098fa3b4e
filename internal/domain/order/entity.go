// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the fulfilment status of an order line
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
)

// PaymentStatus represents payment status of an order line
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Order is a placed order as returned by the backend
type Order struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user,omitempty"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []Detail        `json:"items,omitempty"`
}

// Detail is one shop-level line of an order
type Detail struct {
	ID            int64           `json:"id,omitempty"`
	OrderID       int64           `json:"order"`
	ProductID     int64           `json:"product"`
	ShopID        int64           `json:"shop"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Status        Status          `json:"order_status,omitempty"`
	PaymentStatus PaymentStatus   `json:"payment_status,omitempty"`
}

// Line is one requested product and quantity
type Line struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CreateRequest is the body of an order submission
type CreateRequest struct {
	Items []Line `json:"items"`
}
