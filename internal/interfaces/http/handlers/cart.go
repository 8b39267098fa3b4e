// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/product"
)

// ProductGetter resolves a product id to its catalog payload
type ProductGetter interface {
	GetPublic(ctx context.Context, productID int64) (*product.Product, error)
}

// AddToCartRequest adds a product by id or by its full payload
type AddToCartRequest struct {
	ProductID int64            `json:"product_id"`
	Product   *product.Product `json:"product"`
	Variant   *product.Variant `json:"variant"`
	Quantity  int              `json:"quantity"`
}

// UpdateCartItemRequest sets a line quantity
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartHandler handles cart endpoints
type CartHandler struct {
	store    *cart.Store
	catalog  ProductGetter
	homePath string
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *cart.Store, catalog ProductGetter, homePath string) *CartHandler {
	return &CartHandler{
		store:    store,
		catalog:  catalog,
		homePath: homePath,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.store.Snapshot(),
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"count": h.store.TotalItemCount()},
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p := req.Product
	if p == nil {
		if req.ProductID <= 0 {
			badRequest(c, errors.New("product or product_id is required"))
			return
		}
		fetched, err := h.catalog.GetPublic(c.Request.Context(), req.ProductID)
		if err != nil {
			respondError(c, err, h.homePath)
			return
		}
		p = fetched
	}

	item := h.store.AddItem(c.Request.Context(), *p, req.Variant, req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data": gin.H{
			"item": item,
			"cart": h.store.Snapshot(),
		},
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if !h.store.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity) {
		respondError(c, cart.ErrItemNotFound, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    h.store.Snapshot(),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	if !h.store.RemoveItem(c.Request.Context(), c.Param("id")) {
		respondError(c, cart.ErrItemNotFound, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    h.store.Snapshot(),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.store.Clear(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    h.store.Snapshot(),
	})
}

// ReconcileCart handles POST /cart/reconcile
func (h *CartHandler) ReconcileCart(c *gin.Context) {
	h.store.Reconcile(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart reconciled",
		"data":    h.store.Snapshot(),
	})
}
