// internal/interfaces/http/handlers/review.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-client/internal/domain/product"
	"github.com/your-org/storefront-client/internal/gateway"
)

// FeedbackClient reads and posts product reviews
type FeedbackClient interface {
	ProductFeedback(ctx context.Context, productID int64) ([]product.Feedback, error)
	CreateFeedback(ctx context.Context, accessToken string, productID int64, req product.CreateFeedbackRequest) (*product.Feedback, error)
	FeedbackReplies(ctx context.Context, productID, feedbackID int64) ([]product.Feedback, error)
	CreateFeedbackReply(ctx context.Context, accessToken string, productID, feedbackID int64, req product.CreateReplyRequest) (*product.Feedback, error)
}

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	gateway  *gateway.Gateway
	feedback FeedbackClient
	homePath string
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(gw *gateway.Gateway, feedback FeedbackClient, homePath string) *ReviewHandler {
	return &ReviewHandler{
		gateway:  gw,
		feedback: feedback,
		homePath: homePath,
	}
}

// GetProductReviews handles GET /products/:id/feedback
func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	reviews, err := h.feedback.ProductFeedback(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": reviews,
	})
}

// CreateReview handles POST /products/:id/feedback
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	var req product.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	created, err := gateway.FetchSession(c.Request.Context(), h.gateway, func(ctx context.Context, accessToken string) (*product.Feedback, error) {
		return h.feedback.CreateFeedback(ctx, accessToken, id, req)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created successfully",
		"data":    created,
	})
}

// GetReplies handles GET /products/:id/feedback/:feedbackId/replies
func (h *ReviewHandler) GetReplies(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	feedbackID, ok := idParam(c, "feedbackId", "Invalid feedback ID")
	if !ok {
		return
	}

	replies, err := h.feedback.FeedbackReplies(c.Request.Context(), id, feedbackID)
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": replies,
	})
}

// CreateReply handles POST /products/:id/feedback/:feedbackId/replies
func (h *ReviewHandler) CreateReply(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	feedbackID, ok := idParam(c, "feedbackId", "Invalid feedback ID")
	if !ok {
		return
	}

	var req product.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	created, err := gateway.FetchSession(c.Request.Context(), h.gateway, func(ctx context.Context, accessToken string) (*product.Feedback, error) {
		return h.feedback.CreateFeedbackReply(ctx, accessToken, id, feedbackID, req)
	})
	if err != nil {
		respondError(c, err, h.homePath)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reply created successfully",
		"data":    created,
	})
}
