package api

import (
	"context"
	"net/http"

	"github.com/your-org/storefront-client/internal/domain/shop"
)

const myShopPath = "/shops/my-shop/"

// MyShop returns the bearer's shop
func (c *Client) MyShop(ctx context.Context, accessToken string) (*shop.Shop, error) {
	var s shop.Shop
	if err := c.do(ctx, http.MethodGet, myShopPath, accessToken, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateMyShop opens a shop for the bearer
func (c *Client) CreateMyShop(ctx context.Context, accessToken string, req shop.Request) (*shop.Shop, error) {
	return c.writeShop(ctx, http.MethodPost, accessToken, req)
}

// UpdateMyShop renames the bearer's shop
func (c *Client) UpdateMyShop(ctx context.Context, accessToken string, req shop.Request) (*shop.Shop, error) {
	return c.writeShop(ctx, http.MethodPut, accessToken, req)
}

func (c *Client) writeShop(ctx context.Context, method, accessToken string, req shop.Request) (*shop.Shop, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var s shop.Shop
	if err := c.do(ctx, method, myShopPath, accessToken, req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
