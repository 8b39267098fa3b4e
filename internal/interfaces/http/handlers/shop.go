// internal/interfaces/http/handlers/shop.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-client/internal/domain/shop"
	"github.com/your-org/storefront-client/internal/gateway"
)

// ShopClient manages the bearer's shop
type ShopClient interface {
	MyShop(ctx context.Context, accessToken string) (*shop.Shop, error)
	CreateMyShop(ctx context.Context, accessToken string, req shop.Request) (*shop.Shop, error)
	UpdateMyShop(ctx context.Context, accessToken string, req shop.Request) (*shop.Shop, error)
}

// ShopHandler handles seller shop endpoints
type ShopHandler struct {
	gateway  *gateway.Gateway
	shops    ShopClient
	homePath string
}

// NewShopHandler creates a new shop handler
func NewShopHandler(gw *gateway.Gateway, shops ShopClient, homePath string) *ShopHandler {
	return &ShopHandler{
		gateway:  gw,
		shops:    shops,
		homePath: homePath,
	}
}

// GetShop handles GET /seller/shop
func (h *ShopHandler) GetShop(c *gin.Context) {
	s, err := gateway.FetchSession(c.Request.Context(), h.gateway, h.shops.MyShop)
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": s,
	})
}

// CreateShop handles POST /seller/shop
func (h *ShopHandler) CreateShop(c *gin.Context) {
	h.write(c, h.shops.CreateMyShop, http.StatusCreated, "Shop created successfully")
}

// UpdateShop handles PUT /seller/shop
func (h *ShopHandler) UpdateShop(c *gin.Context) {
	h.write(c, h.shops.UpdateMyShop, http.StatusOK, "Shop updated successfully")
}

func (h *ShopHandler) write(c *gin.Context, send func(context.Context, string, shop.Request) (*shop.Shop, error), status int, message string) {
	var req shop.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	s, err := gateway.FetchSession(c.Request.Context(), h.gateway, func(ctx context.Context, accessToken string) (*shop.Shop, error) {
		return send(ctx, accessToken, req)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(status, gin.H{
		"message": message,
		"data":    s,
	})
}
