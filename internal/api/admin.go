package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/your-org/storefront-client/internal/domain/product"
	"github.com/your-org/storefront-client/internal/domain/user"
)

// AllUsers lists every account
func (c *Client) AllUsers(ctx context.Context, accessToken string) ([]user.Profile, error) {
	var users []user.Profile
	if err := c.doAdmin(ctx, http.MethodGet, "/users/", accessToken, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// PendingUsers lists accounts waiting for approval
func (c *Client) PendingUsers(ctx context.Context, accessToken string) ([]user.Profile, error) {
	var users []user.Profile
	if err := c.doAdmin(ctx, http.MethodGet, "/pendingusers/", accessToken, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns one account
func (c *Client) GetUser(ctx context.Context, accessToken string, userID int64) (*user.Profile, error) {
	var profile user.Profile
	if err := c.doAdmin(ctx, http.MethodGet, fmt.Sprintf("/user/%d/", userID), accessToken, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateUser changes an account's role or status
func (c *Client) UpdateUser(ctx context.Context, accessToken string, userID int64, req user.AdminUpdateRequest) (*user.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var profile user.Profile
	if err := c.doAdmin(ctx, http.MethodPut, fmt.Sprintf("/user/%d/", userID), accessToken, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteUser removes an account
func (c *Client) DeleteUser(ctx context.Context, accessToken string, userID int64) error {
	return c.doAdmin(ctx, http.MethodDelete, fmt.Sprintf("/user/%d/", userID), accessToken, nil, nil)
}

// PendingProducts lists products waiting for approval
func (c *Client) PendingProducts(ctx context.Context, accessToken string) ([]product.Product, error) {
	var page product.Page
	if err := c.doAdmin(ctx, http.MethodGet, "/product-list/", accessToken, nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// GetPendingProduct returns one product under review
func (c *Client) GetPendingProduct(ctx context.Context, accessToken string, productID int64) (*product.Product, error) {
	var p product.Product
	if err := c.doAdmin(ctx, http.MethodGet, fmt.Sprintf("/product/%d/", productID), accessToken, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ApproveProduct publishes a product under review
func (c *Client) ApproveProduct(ctx context.Context, accessToken string, productID int64) (*product.Product, error) {
	var p product.Product
	if err := c.doAdmin(ctx, http.MethodPut, fmt.Sprintf("/product/%d/", productID), accessToken, map[string]string{}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// BannedFeedback lists the hidden reviews of a product
func (c *Client) BannedFeedback(ctx context.Context, accessToken string, productID int64) ([]product.Feedback, error) {
	var feedback []product.Feedback
	if err := c.doAdmin(ctx, http.MethodGet, fmt.Sprintf("/banned-feedback/%d/", productID), accessToken, nil, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// ApproveFeedback makes a hidden review visible again
func (c *Client) ApproveFeedback(ctx context.Context, accessToken string, feedbackID int64) (*product.Feedback, error) {
	var fb product.Feedback
	if err := c.doAdmin(ctx, http.MethodPut, fmt.Sprintf("/approve-feedback/%d/", feedbackID), accessToken, map[string]string{}, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}
