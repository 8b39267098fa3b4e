package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/your-org/storefront-client/internal/domain/product"
)

func sellerPaths(scope product.Scope) (list, create, item string) {
	if scope == product.ScopePrivate {
		return "/products/private/list/", "/products/private/", "/products/private/%d/"
	}
	return "/products/seller/my-products/", "/products/seller/my-products/", "/products/seller/my-products/%d/"
}

// SellerProducts lists the bearer's own products
func (c *Client) SellerProducts(ctx context.Context, accessToken string, scope product.Scope) ([]product.Product, error) {
	list, _, _ := sellerPaths(scope)

	var page product.Page
	if err := c.do(ctx, http.MethodGet, list, accessToken, nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// SellerProduct returns one of the bearer's products
func (c *Client) SellerProduct(ctx context.Context, accessToken string, scope product.Scope, productID int64) (*product.Product, error) {
	_, _, item := sellerPaths(scope)

	var p product.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf(item, productID), accessToken, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateSellerProduct adds a product to the bearer's shop
func (c *Client) CreateSellerProduct(ctx context.Context, accessToken string, scope product.Scope, req product.WriteRequest) (*product.Product, error) {
	if err := req.ValidateCreate(); err != nil {
		return nil, err
	}
	_, create, _ := sellerPaths(scope)

	var p product.Product
	if err := c.do(ctx, http.MethodPost, create, accessToken, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateSellerProduct changes the fields set in req
func (c *Client) UpdateSellerProduct(ctx context.Context, accessToken string, scope product.Scope, productID int64, req product.WriteRequest) (*product.Product, error) {
	if err := req.ValidateUpdate(); err != nil {
		return nil, err
	}
	_, _, item := sellerPaths(scope)

	var p product.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf(item, productID), accessToken, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteSellerProduct removes one of the bearer's products
func (c *Client) DeleteSellerProduct(ctx context.Context, accessToken string, scope product.Scope, productID int64) error {
	_, _, item := sellerPaths(scope)
	return c.do(ctx, http.MethodDelete, fmt.Sprintf(item, productID), accessToken, nil, nil)
}
