package api

import (
	"context"
	"net/http"

	"github.com/your-org/storefront-client/internal/domain/session"
)

// tokenResponse accepts tokens at the top level or nested under "tokens"
type tokenResponse struct {
	session.TokenSet
	Tokens *session.TokenSet `json:"tokens"`
	User   *struct {
		UserID *session.UserID `json:"user_id"`
	} `json:"user"`
}

func (r *tokenResponse) tokenSet() *session.TokenSet {
	tokens := r.TokenSet
	if r.Tokens != nil && r.Tokens.Access != "" {
		tokens = *r.Tokens
	}
	if tokens.UserID == nil && r.User != nil {
		tokens.UserID = r.User.UserID
	}
	if tokens.Access == "" {
		return nil
	}
	return &tokens
}

// Login exchanges credentials for a token set
func (c *Client) Login(ctx context.Context, email, password string) (*session.TokenSet, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login/", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.tokenSet(), nil
}

// Register creates an account; the token set is nil when the backend does
// not log the new user in.
func (c *Client) Register(ctx context.Context, userName, email, password string) (*session.TokenSet, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/register/", "", map[string]string{
		"user_name": userName,
		"email":     email,
		"password":  password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.tokenSet(), nil
}

// RefreshTokens exchanges a refresh token for a new token set
func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (*session.TokenSet, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, c.refreshPath, "", map[string]string{
		"refresh": refreshToken,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.tokenSet(), nil
}

// ForgotPassword asks the backend to mail a reset code
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password/", "", map[string]string{
		"email": email,
	}, nil)
}

// ResetPassword sets a new password using the mailed code
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password/", "", map[string]string{
		"email":        email,
		"otp":          otp,
		"new_password": newPassword,
	}, nil)
}
