// internal/domain/product/seller.go
package product

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scope selects which seller-owned listing a call targets
type Scope string

const (
	// ScopeSeller is the seller's public listing
	ScopeSeller Scope = "seller"
	// ScopePrivate holds products not yet visible in the catalog
	ScopePrivate Scope = "private"
)

// WriteRequest creates or updates a seller product. Nil fields are left
// out so an update only touches what was sent.
type WriteRequest struct {
	Name        *string          `json:"product_name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Discount    *decimal.Decimal `json:"discount,omitempty"`
	Category    *int64           `json:"category,omitempty"`
}

// ValidateCreate requires the fields the backend needs for a new product
func (r *WriteRequest) ValidateCreate() error {
	if r.Name == nil || *r.Name == "" {
		return errors.New("product_name is required")
	}
	if r.Price == nil {
		return errors.New("price is required")
	}
	return r.validateValues()
}

// ValidateUpdate requires at least one field
func (r *WriteRequest) ValidateUpdate() error {
	if r.Name == nil && r.Description == nil && r.Price == nil &&
		r.Quantity == nil && r.Discount == nil && r.Category == nil {
		return errors.New("no fields to update")
	}
	if r.Name != nil && *r.Name == "" {
		return errors.New("product_name cannot be empty")
	}
	return r.validateValues()
}

func (r *WriteRequest) validateValues() error {
	if r.Price != nil && !r.Price.IsPositive() {
		return fmt.Errorf("price must be positive, got %s", r.Price)
	}
	if r.Quantity != nil && *r.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative, got %d", *r.Quantity)
	}
	if r.Discount != nil && (r.Discount.IsNegative() || r.Discount.GreaterThan(hundred)) {
		return fmt.Errorf("discount must be between 0 and 100, got %s", r.Discount)
	}
	return nil
}
