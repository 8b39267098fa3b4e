// internal/domain/cart/entity.go
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/your-org/storefront-client/internal/domain/product"
)

// LineItem is one product+variant+quantity entry in a cart
type LineItem struct {
	ID       string           `json:"id"`
	Product  product.Product  `json:"product"`
	Variant  *product.Variant `json:"variant"`
	Quantity int              `json:"quantity"`
}

// UnitPrice is the variant price (or base price) after the product discount
func (li LineItem) UnitPrice() decimal.Decimal {
	price := li.Product.BasePrice
	if li.Variant != nil && li.Variant.Price.Valid {
		price = li.Variant.Price.Decimal
	}
	return li.Product.ApplyDiscount(price)
}

// Subtotal is UnitPrice times quantity
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// itemKey identifies a line for merging; a nil variant only matches a nil variant
type itemKey struct {
	productID  int64
	variantID  int64
	hasVariant bool
}

func keyOf(p product.Product, variant *product.Variant) itemKey {
	if variant == nil {
		return itemKey{productID: p.ID}
	}
	return itemKey{productID: p.ID, variantID: variant.ID, hasVariant: true}
}

func (li LineItem) key() itemKey {
	return keyOf(li.Product, li.Variant)
}

// Totals represents calculated cart totals
type Totals struct {
	LineCount  int             `json:"line_count"`
	ItemCount  int             `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Snapshot is a consistent copy of the active cart
type Snapshot struct {
	Owner  string     `json:"owner"`
	Items  []LineItem `json:"items"`
	Totals Totals     `json:"totals"`
}
