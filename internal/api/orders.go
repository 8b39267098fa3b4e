package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/your-org/storefront-client/internal/domain/order"
)

// CreateOrder places an order for the bearer
func (c *Client) CreateOrder(ctx context.Context, accessToken string, req order.CreateRequest) (*order.Order, error) {
	var placed order.Order
	if err := c.do(ctx, http.MethodPost, "/orders/", accessToken, req, &placed); err != nil {
		return nil, err
	}
	return &placed, nil
}

// MyOrders lists the bearer's orders
func (c *Client) MyOrders(ctx context.Context, accessToken string) ([]order.Order, error) {
	var orders []order.Order
	if err := c.do(ctx, http.MethodGet, "/orders/", accessToken, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns one of the bearer's orders
func (c *Client) GetOrder(ctx context.Context, accessToken string, orderID int64) (*order.Order, error) {
	var o order.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/", orderID), accessToken, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// MyShopOrders lists order lines for the bearer's shop
func (c *Client) MyShopOrders(ctx context.Context, accessToken string) ([]order.Detail, error) {
	var details []order.Detail
	if err := c.do(ctx, http.MethodGet, "/orders/my-shop/", accessToken, nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}
