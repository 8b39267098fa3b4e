// internal/domain/shop/entity.go
package shop

import (
	"errors"
	"strings"
)

// Shop is the storefront a seller manages
type Shop struct {
	ID    int64  `json:"shop_id"`
	Name  string `json:"shop_name"`
	Owner int64  `json:"owner,omitempty"`
}

// Request creates or renames the caller's shop
type Request struct {
	Name string `json:"shop_name"`
}

// Validate rejects a blank shop name
func (r *Request) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("shop_name is required")
	}
	return nil
}
