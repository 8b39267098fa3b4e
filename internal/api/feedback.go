package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/your-org/storefront-client/internal/domain/product"
)

// ProductFeedback lists the reviews of a product
func (c *Client) ProductFeedback(ctx context.Context, productID int64) ([]product.Feedback, error) {
	var feedback []product.Feedback
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/feedback/%d/", productID), "", nil, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// CreateFeedback posts a review as the bearer
func (c *Client) CreateFeedback(ctx context.Context, accessToken string, productID int64, req product.CreateFeedbackRequest) (*product.Feedback, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var created product.Feedback
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/feedback/%d/", productID), accessToken, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// FeedbackReplies lists the replies to a review
func (c *Client) FeedbackReplies(ctx context.Context, productID, feedbackID int64) ([]product.Feedback, error) {
	var replies []product.Feedback
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/feedback/%d/%d/", productID, feedbackID), "", nil, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

// CreateFeedbackReply answers a review as the bearer
func (c *Client) CreateFeedbackReply(ctx context.Context, accessToken string, productID, feedbackID int64, req product.CreateReplyRequest) (*product.Feedback, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var created product.Feedback
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/feedback/%d/%d/", productID, feedbackID), accessToken, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
