// internal/interfaces/http/handlers/user_profile.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-client/internal/domain/user"
	"github.com/your-org/storefront-client/internal/gateway"
)

// ProfileClient reads and edits the bearer's profile
type ProfileClient interface {
	Me(ctx context.Context, accessToken string) (*user.Profile, error)
	UpdateMe(ctx context.Context, accessToken string, req user.UpdateProfileRequest) (*user.Profile, error)
}

// UserProfileHandler handles profile endpoints
type UserProfileHandler struct {
	gateway  *gateway.Gateway
	profiles ProfileClient
	homePath string
}

// NewUserProfileHandler creates a new profile handler
func NewUserProfileHandler(gw *gateway.Gateway, profiles ProfileClient, homePath string) *UserProfileHandler {
	return &UserProfileHandler{
		gateway:  gw,
		profiles: profiles,
		homePath: homePath,
	}
}

// GetProfile handles GET /auth/me
func (h *UserProfileHandler) GetProfile(c *gin.Context) {
	profile, err := gateway.FetchSession(c.Request.Context(), h.gateway, h.profiles.Me)
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": profile,
	})
}

// UpdateProfile handles PUT /auth/me
func (h *UserProfileHandler) UpdateProfile(c *gin.Context) {
	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	profile, err := gateway.FetchSession(c.Request.Context(), h.gateway, func(ctx context.Context, accessToken string) (*user.Profile, error) {
		return h.profiles.UpdateMe(ctx, accessToken, req)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    profile,
	})
}
