package api

import (
	"context"
	"net/http"

	"github.com/your-org/storefront-client/internal/domain/user"
)

// Me returns the bearer's profile
func (c *Client) Me(ctx context.Context, accessToken string) (*user.Profile, error) {
	var profile user.Profile
	if err := c.do(ctx, http.MethodGet, "/users/me/", accessToken, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateMe changes the bearer's profile
func (c *Client) UpdateMe(ctx context.Context, accessToken string, req user.UpdateProfileRequest) (*user.Profile, error) {
	var profile user.Profile
	if err := c.do(ctx, http.MethodPut, "/users/me/", accessToken, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
