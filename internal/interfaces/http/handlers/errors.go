// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/gateway"
)

// respondError maps domain and gateway errors to facade responses
func respondError(c *gin.Context, err error, homePath string) {
	_ = c.Error(err)

	var httpErr *gateway.HTTPError
	switch {
	case errors.Is(err, gateway.ErrAccountDisabled):
		c.Redirect(http.StatusSeeOther, homePath)
	case errors.Is(err, gateway.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Session expired, please log in again",
			"code":  "session_expired",
		})
	case errors.Is(err, gateway.ErrLoginRequired):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Please log in",
			"code":  "login_required",
		})
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cart is empty",
		})
	case errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Cart item not found",
		})
	case errors.As(err, &httpErr):
		status := httpErr.Status
		if status < 400 {
			status = http.StatusBadGateway
		}
		body := gin.H{"error": httpErr.Detail}
		if httpErr.Detail == "" {
			body["error"] = http.StatusText(status)
		}
		if httpErr.Code != "" {
			body["code"] = httpErr.Code
		}
		c.JSON(status, body)
	default:
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Backend request failed",
		})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}
