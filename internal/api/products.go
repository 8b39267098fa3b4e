package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/your-org/storefront-client/internal/domain/product"
)

// ListPublic returns the public catalog
func (c *Client) ListPublic(ctx context.Context, filter product.ListFilter) (*product.Page, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}

	path := "/products/public/list/"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page product.Page
	if err := c.do(ctx, http.MethodGet, path, "", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPublic returns one public product
func (c *Client) GetPublic(ctx context.Context, productID int64) (*product.Product, error) {
	var p product.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/public/%d/", productID), "", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Trendy returns the trending products
func (c *Client) Trendy(ctx context.Context) ([]product.Product, error) {
	return c.productList(ctx, "/products/public/trendy/")
}

// FlashSale returns the products currently on flash sale
func (c *Client) FlashSale(ctx context.Context) ([]product.Product, error) {
	return c.productList(ctx, "/products/public/flash-sale/")
}

// Recommend returns recommendations; signed-in users get personal ones
func (c *Client) Recommend(ctx context.Context, accessToken string) ([]product.Product, error) {
	var page product.Page
	if err := c.do(ctx, http.MethodGet, "/products/public/recommend/", accessToken, nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (c *Client) productList(ctx context.Context, path string) ([]product.Product, error) {
	var page product.Page
	if err := c.do(ctx, http.MethodGet, path, "", nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}
