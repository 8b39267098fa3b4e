// internal/domain/product/entity.go
package product

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Product is the catalog payload shown to buyers and kept inside cart lines
type Product struct {
	ID          int64           `json:"product_id"`
	Name        string          `json:"product_name"`
	Description string          `json:"description,omitempty"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Discount    decimal.Decimal `json:"discount"` // percent
	Stock       int             `json:"quantity,omitempty"`
	Category    json.RawMessage `json:"category,omitempty"`
	Images      json.RawMessage `json:"images,omitempty"`
}

// UnmarshalJSON also accepts "id" and "price" as the backend names them
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var aux struct {
		plain
		ID        *int64           `json:"product_id"`
		AltID     *int64           `json:"id"`
		BasePrice *decimal.Decimal `json:"base_price"`
		Price     *decimal.Decimal `json:"price"`
		Discount  *decimal.Decimal `json:"discount"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*p = Product(aux.plain)
	switch {
	case aux.ID != nil:
		p.ID = *aux.ID
	case aux.AltID != nil:
		p.ID = *aux.AltID
	}
	switch {
	case aux.BasePrice != nil:
		p.BasePrice = *aux.BasePrice
	case aux.Price != nil:
		p.BasePrice = *aux.Price
	}
	if aux.Discount != nil {
		p.Discount = *aux.Discount
	}
	return nil
}

// DiscountedPrice is the base price after the product discount
func (p *Product) DiscountedPrice() decimal.Decimal {
	return p.ApplyDiscount(p.BasePrice)
}

// ApplyDiscount takes the product's discount percent off price
func (p *Product) ApplyDiscount(price decimal.Decimal) decimal.Decimal {
	return price.Mul(hundred.Sub(p.Discount)).Div(hundred)
}

// Variant is an optional product variant overriding the price
type Variant struct {
	ID         int64               `json:"id"`
	Name       string              `json:"name,omitempty"`
	Price      decimal.NullDecimal `json:"price"`
	Attributes json.RawMessage     `json:"attributes,omitempty"`
}

// Page is a list response; the backend sends either a bare array or a
// paginated object
type Page struct {
	Count    int       `json:"count"`
	Next     string    `json:"next,omitempty"`
	Previous string    `json:"previous,omitempty"`
	Results  []Product `json:"results"`
}

// UnmarshalJSON accepts a bare array or {count,next,previous,results}
func (p *Page) UnmarshalJSON(data []byte) error {
	var items []Product
	if err := json.Unmarshal(data, &items); err == nil {
		*p = Page{Count: len(items), Results: items}
		return nil
	}

	type plain Page
	var page plain
	if err := json.Unmarshal(data, &page); err != nil {
		return err
	}
	*p = Page(page)
	return nil
}

// ListFilter narrows the public product list
type ListFilter struct {
	Search   string
	Category string
	Page     int
}
