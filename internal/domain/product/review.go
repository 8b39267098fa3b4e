// internal/domain/product/review.go
package product

import (
	"errors"
	"fmt"
	"strings"
)

// Feedback is a buyer review of a product
type Feedback struct {
	ID        int64  `json:"id"`
	Rating    int    `json:"rating"`
	Review    string `json:"review"`
	UserID    int64  `json:"user"`
	ProductID int64  `json:"product"`
	Status    string `json:"status,omitempty"`
}

// CreateFeedbackRequest is the body of a new review
type CreateFeedbackRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// Validate checks the rating range
func (r *CreateFeedbackRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", r.Rating)
	}
	return nil
}

// CreateReplyRequest answers an existing review
type CreateReplyRequest struct {
	Review string `json:"review"`
}

// Validate rejects an empty reply
func (r *CreateReplyRequest) Validate() error {
	if strings.TrimSpace(r.Review) == "" {
		return errors.New("review is required")
	}
	return nil
}
