// internal/interfaces/http/handlers/user_admin.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-client/internal/domain/product"
	"github.com/your-org/storefront-client/internal/domain/user"
	"github.com/your-org/storefront-client/internal/gateway"
)

// AdminClient calls the backend moderation endpoints
type AdminClient interface {
	AllUsers(ctx context.Context, accessToken string) ([]user.Profile, error)
	PendingUsers(ctx context.Context, accessToken string) ([]user.Profile, error)
	GetUser(ctx context.Context, accessToken string, userID int64) (*user.Profile, error)
	UpdateUser(ctx context.Context, accessToken string, userID int64, req user.AdminUpdateRequest) (*user.Profile, error)
	DeleteUser(ctx context.Context, accessToken string, userID int64) error
	PendingProducts(ctx context.Context, accessToken string) ([]product.Product, error)
	GetPendingProduct(ctx context.Context, accessToken string, productID int64) (*product.Product, error)
	ApproveProduct(ctx context.Context, accessToken string, productID int64) (*product.Product, error)
	BannedFeedback(ctx context.Context, accessToken string, productID int64) ([]product.Feedback, error)
	ApproveFeedback(ctx context.Context, accessToken string, feedbackID int64) (*product.Feedback, error)
}

// UserAdminHandler handles admin moderation endpoints
type UserAdminHandler struct {
	gateway  *gateway.Gateway
	admin    AdminClient
	homePath string
}

// NewUserAdminHandler creates a new user admin handler
func NewUserAdminHandler(gw *gateway.Gateway, admin AdminClient, homePath string) *UserAdminHandler {
	return &UserAdminHandler{
		gateway:  gw,
		admin:    admin,
		homePath: homePath,
	}
}

// GetUsers handles GET /admin/users
func (h *UserAdminHandler) GetUsers(c *gin.Context) {
	users, err := gateway.FetchSession(c.Request.Context(), h.gateway, h.admin.AllUsers)
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users retrieved successfully",
		"data":    users,
	})
}

// GetPendingUsers handles GET /admin/pending-users
func (h *UserAdminHandler) GetPendingUsers(c *gin.Context) {
	users, err := gateway.FetchSession(c.Request.Context(), h.gateway, h.admin.PendingUsers)
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pending users retrieved successfully",
		"data":    users,
	})
}

// GetUser handles GET /admin/users/:id
func (h *UserAdminHandler) GetUser(c *gin.Context) {
	userID, ok := idParam(c, "id", "Invalid user ID")
	if !ok {
		return
	}

	profile, err := gateway.FetchSession(c.Request.Context(), h.gateway, func(ctx context.Context, accessToken string) (*user.Profile, error) {
		return h.admin.GetUser(ctx, accessToken, userID)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User retrieved successfully",
		"data":    profile,
	})
}

// UpdateUser handles PUT /admin/users/:id
func (h *UserAdminHandler) UpdateUser(c *gin.Context) {
	userID, ok := idParam(c, "id", "Invalid user ID")
	if !ok {
		return
	}

	var req user.AdminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	profile, err := gateway.FetchSession(c.Request.Context(), h.gateway, func(ctx context.Context, accessToken string) (*user.Profile, error) {
		return h.admin.UpdateUser(ctx, accessToken, userID, req)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"data":    profile,
	})
}

// DeleteUser handles DELETE /admin/users/:id
func (h *UserAdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := idParam(c, "id", "Invalid user ID")
	if !ok {
		return
	}

	err := h.gateway.Session(c.Request.Context(), func(ctx context.Context, accessToken string) error {
		return h.admin.DeleteUser(ctx, accessToken, userID)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

// GetPendingProducts handles GET /admin/pending-products
func (h *UserAdminHandler) GetPendingProducts(c *gin.Context) {
	products, err := gateway.FetchSession(c.Request.Context(), h.gateway, h.admin.PendingProducts)
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pending products retrieved successfully",
		"data":    products,
	})
}

// GetPendingProduct handles GET /admin/products/:id
func (h *UserAdminHandler) GetPendingProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	p, err := gateway.FetchSession(c.Request.Context(), h.gateway, func(ctx context.Context, accessToken string) (*product.Product, error) {
		return h.admin.GetPendingProduct(ctx, accessToken, id)
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

// ApproveProduct handles PUT /admin/products/:id/approve
func (h *UserAdminHandler) ApproveProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	p, err := gateway.FetchSession(c.Request.Context(), h.gateway, func(ctx context.Context, accessToken string) (*product.Product, error) {
		return h.admin.ApproveProduct(ctx, accessToken, id)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product approved successfully",
		"data":    p,
	})
}

// GetBannedFeedback handles GET /admin/products/:id/banned-feedback
func (h *UserAdminHandler) GetBannedFeedback(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	feedback, err := gateway.FetchSession(c.Request.Context(), h.gateway, func(ctx context.Context, accessToken string) ([]product.Feedback, error) {
		return h.admin.BannedFeedback(ctx, accessToken, id)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Banned feedback retrieved successfully",
		"data":    feedback,
	})
}

// ApproveFeedback handles PUT /admin/feedback/:id/approve
func (h *UserAdminHandler) ApproveFeedback(c *gin.Context) {
	id, ok := idParam(c, "id", "Invalid feedback ID")
	if !ok {
		return
	}

	fb, err := gateway.FetchSession(c.Request.Context(), h.gateway, func(ctx context.Context, accessToken string) (*product.Feedback, error) {
		return h.admin.ApproveFeedback(ctx, accessToken, id)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Feedback approved successfully",
		"data":    fb,
	})
}
