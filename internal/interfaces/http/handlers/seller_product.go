// internal/interfaces/http/handlers/seller_product.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-client/internal/domain/product"
	"github.com/your-org/storefront-client/internal/gateway"
)

// SellerProductClient manages the bearer's own products
type SellerProductClient interface {
	SellerProducts(ctx context.Context, accessToken string, scope product.Scope) ([]product.Product, error)
	SellerProduct(ctx context.Context, accessToken string, scope product.Scope, productID int64) (*product.Product, error)
	CreateSellerProduct(ctx context.Context, accessToken string, scope product.Scope, req product.WriteRequest) (*product.Product, error)
	UpdateSellerProduct(ctx context.Context, accessToken string, scope product.Scope, productID int64, req product.WriteRequest) (*product.Product, error)
	DeleteSellerProduct(ctx context.Context, accessToken string, scope product.Scope, productID int64) error
}

// SellerProductHandler handles product management for one listing scope
type SellerProductHandler struct {
	gateway  *gateway.Gateway
	products SellerProductClient
	scope    product.Scope
	homePath string
}

// NewSellerProductHandler creates a handler bound to scope
func NewSellerProductHandler(gw *gateway.Gateway, products SellerProductClient, scope product.Scope, homePath string) *SellerProductHandler {
	return &SellerProductHandler{
		gateway:  gw,
		products: products,
		scope:    scope,
		homePath: homePath,
	}
}

// GetProducts handles GET /seller/products
func (h *SellerProductHandler) GetProducts(c *gin.Context) {
	products, err := gateway.FetchSession(c.Request.Context(), h.gateway, func(ctx context.Context, accessToken string) ([]product.Product, error) {
		return h.products.SellerProducts(ctx, accessToken, h.scope)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// GetProduct handles GET /seller/products/:id
func (h *SellerProductHandler) GetProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	p, err := gateway.FetchSession(c.Request.Context(), h.gateway, func(ctx context.Context, accessToken string) (*product.Product, error) {
		return h.products.SellerProduct(ctx, accessToken, h.scope, id)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    p,
	})
}

// CreateProduct handles POST /seller/products
func (h *SellerProductHandler) CreateProduct(c *gin.Context) {
	var req product.WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.ValidateCreate(); err != nil {
		badRequest(c, err)
		return
	}

	p, err := gateway.FetchSession(c.Request.Context(), h.gateway, func(ctx context.Context, accessToken string) (*product.Product, error) {
		return h.products.CreateSellerProduct(ctx, accessToken, h.scope, req)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    p,
	})
}

// UpdateProduct handles PUT /seller/products/:id
func (h *SellerProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	var req product.WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.ValidateUpdate(); err != nil {
		badRequest(c, err)
		return
	}

	p, err := gateway.FetchSession(c.Request.Context(), h.gateway, func(ctx context.Context, accessToken string) (*product.Product, error) {
		return h.products.UpdateSellerProduct(ctx, accessToken, h.scope, id, req)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    p,
	})
}

// DeleteProduct handles DELETE /seller/products/:id
func (h *SellerProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	err := h.gateway.Session(c.Request.Context(), func(ctx context.Context, accessToken string) error {
		return h.products.DeleteSellerProduct(ctx, accessToken, h.scope, id)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}
