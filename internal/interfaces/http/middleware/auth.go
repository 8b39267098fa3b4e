// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-client/internal/domain/session"
)

// AuthMiddleware rejects requests while the session has no access token
func AuthMiddleware(tokens *session.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		stored, err := tokens.Load(c.Request.Context())
		if err != nil || !stored.HasAccess() {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Please log in",
			})
			c.Abort()
			return
		}

		owner, mode := session.DecodeOwnerID(stored)
		c.Set("owner_id", owner)
		c.Set("owner_mode", mode.String())

		c.Next()
	}
}

// GetOwnerIDFromContext returns the owner id set by AuthMiddleware
func GetOwnerIDFromContext(c *gin.Context) (string, bool) {
	owner, exists := c.Get("owner_id")
	if !exists {
		return "", false
	}
	id, ok := owner.(string)
	return id, ok
}
