// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-client/internal/domain/checkout"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkout *checkout.Service
	homePath string
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(svc *checkout.Service, homePath string) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: svc,
		homePath: homePath,
	}
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	placed, err := h.checkout.Checkout(c.Request.Context())
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}
