// internal/interfaces/http/handlers/order.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-client/internal/domain/order"
	"github.com/your-org/storefront-client/internal/gateway"
)

// OrderLister reads the bearer's orders
type OrderLister interface {
	MyOrders(ctx context.Context, accessToken string) ([]order.Order, error)
	MyShopOrders(ctx context.Context, accessToken string) ([]order.Detail, error)
}

// OrderHandler handles order history endpoints
type OrderHandler struct {
	gateway  *gateway.Gateway
	orders   OrderLister
	homePath string
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(gw *gateway.Gateway, orders OrderLister, homePath string) *OrderHandler {
	return &OrderHandler{
		gateway:  gw,
		orders:   orders,
		homePath: homePath,
	}
}

// GetUserOrders handles GET /orders
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	orders, err := gateway.FetchSession(c.Request.Context(), h.gateway, h.orders.MyOrders)
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": orders,
	})
}

// GetShopOrders handles GET /orders/shop
func (h *OrderHandler) GetShopOrders(c *gin.Context) {
	details, err := gateway.FetchSession(c.Request.Context(), h.gateway, h.orders.MyShopOrders)
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": details,
	})
}
