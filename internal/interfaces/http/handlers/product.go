// internal/interfaces/http/handlers/product.go
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-client/internal/domain/product"
	"github.com/your-org/storefront-client/internal/gateway"
)

// Catalog is the public product catalog of the backend
type Catalog interface {
	ProductGetter
	ListPublic(ctx context.Context, filter product.ListFilter) (*product.Page, error)
	Trendy(ctx context.Context) ([]product.Product, error)
	FlashSale(ctx context.Context) ([]product.Product, error)
	Recommend(ctx context.Context, accessToken string) ([]product.Product, error)
}

// ProductListQuery holds GET /products query parameters
type ProductListQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
}

// ProductHandler handles product endpoints
type ProductHandler struct {
	catalog  Catalog
	gateway  *gateway.Gateway
	homePath string
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog Catalog, gw *gateway.Gateway, homePath string) *ProductHandler {
	return &ProductHandler{
		catalog:  catalog,
		gateway:  gw,
		homePath: homePath,
	}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var query ProductListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	page, err := h.catalog.ListPublic(c.Request.Context(), product.ListFilter{
		Search:   query.Search,
		Category: query.Category,
		Page:     query.Page,
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": page,
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	p, err := h.catalog.GetPublic(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": p,
	})
}

// GetTrendy handles GET /products/trendy
func (h *ProductHandler) GetTrendy(c *gin.Context) {
	h.respondList(c, h.catalog.Trendy)
}

// GetFlashSale handles GET /products/flash-sale
func (h *ProductHandler) GetFlashSale(c *gin.Context) {
	h.respondList(c, h.catalog.FlashSale)
}

// GetRecommended handles GET /products/recommend. Signed-in sessions get
// personal recommendations through the gateway; guests get the default list.
func (h *ProductHandler) GetRecommended(c *gin.Context) {
	products, err := gateway.FetchSession(c.Request.Context(), h.gateway, h.catalog.Recommend)
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": products,
	})
}

func (h *ProductHandler) respondList(c *gin.Context, list func(ctx context.Context) ([]product.Product, error)) {
	products, err := list(c.Request.Context())
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": products,
	})
}

func productIDParam(c *gin.Context) (int64, bool) {
	return idParam(c, "id", "Invalid product ID")
}

func idParam(c *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": message,
		})
		return 0, false
	}
	return id, true
}
