// internal/gateway/gateway.go
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/pkg/metrics"
)

// Outcomes recorded per call
const (
	outcomeOK              = "ok"
	outcomeRefreshed       = "refreshed"
	outcomeError           = "error"
	outcomeSessionExpired  = "session_expired"
	outcomeAccountDisabled = "account_disabled"
	outcomeLoginRequired   = "login_required"
)

var errNoRefreshToken = errors.New("no refresh token stored")

// RequestFunc performs one backend call with the given bearer token.
// A failed call returns *HTTPError so the gateway can classify it.
type RequestFunc func(ctx context.Context, accessToken string) error

// Refresher exchanges a refresh token for a new token set
type Refresher interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*session.TokenSet, error)
}

// Navigator performs the forced navigation of a disabled account
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(ctx context.Context, path string)

// Navigate calls f
func (f NavigatorFunc) Navigate(ctx context.Context, path string) {
	f(ctx, path)
}

// Options tunes a Gateway
type Options struct {
	HomePath  string
	Timeout   time.Duration // per attempt, 0 disables
	Navigator Navigator
	Metrics   *metrics.Metrics
}

// Gateway issues authenticated backend calls, refreshing an expired access
// token once and classifying authorization failures.
type Gateway struct {
	tokens    *session.TokenStore
	refresher Refresher
	navigator Navigator
	homePath  string
	timeout   time.Duration
	metrics   *metrics.Metrics
	logger    *logrus.Logger
}

// New creates a Gateway
func New(tokens *session.TokenStore, refresher Refresher, logger *logrus.Logger, opts Options) *Gateway {
	if opts.HomePath == "" {
		opts.HomePath = "/"
	}
	if opts.Navigator == nil {
		opts.Navigator = NavigatorFunc(func(context.Context, string) {})
	}

	return &Gateway{
		tokens:    tokens,
		refresher: refresher,
		navigator: opts.Navigator,
		homePath:  opts.HomePath,
		timeout:   opts.Timeout,
		metrics:   opts.Metrics,
		logger:    logger,
	}
}

// Execute runs fn with accessToken.
//
// A 401 token_not_valid triggers exactly one refresh and one retry. A 401
// user_inactive drops the session and navigates home. Any other 401 drops
// the session. Other failures are returned untouched.
func (g *Gateway) Execute(ctx context.Context, accessToken string, fn RequestFunc) error {
	err := g.attempt(ctx, accessToken, fn)
	if err == nil {
		g.metrics.GatewayRequest(outcomeOK)
		return nil
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusUnauthorized {
		g.metrics.GatewayRequest(outcomeError)
		return err
	}

	switch httpErr.Code {
	case CodeTokenNotValid:
		tokens, refreshErr := g.refresh(ctx)
		if refreshErr != nil {
			g.logger.WithError(refreshErr).Warn("Token refresh failed, ending session")
			g.forget(ctx)
			g.metrics.GatewayRequest(outcomeSessionExpired)
			return fmt.Errorf("%w: %w", ErrSessionExpired, refreshErr)
		}

		if err := g.attempt(ctx, tokens.Access, fn); err != nil {
			g.metrics.GatewayRequest(outcomeError)
			return err
		}
		g.metrics.GatewayRequest(outcomeRefreshed)
		return nil

	case CodeUserInactive:
		g.logger.Warn("Account is disabled, ending session")
		g.forget(ctx)
		g.navigator.Navigate(ctx, g.homePath)
		g.metrics.GatewayRequest(outcomeAccountDisabled)
		return fmt.Errorf("%w: %w", ErrAccountDisabled, err)

	default:
		g.forget(ctx)
		g.metrics.GatewayRequest(outcomeLoginRequired)
		return fmt.Errorf("%w: %w", ErrLoginRequired, err)
	}
}

// Session runs fn with the stored access token
func (g *Gateway) Session(ctx context.Context, fn RequestFunc) error {
	return g.Execute(ctx, g.tokens.AccessToken(ctx), fn)
}

// Fetch runs fn through the gateway and returns its result
func Fetch[T any](ctx context.Context, g *Gateway, accessToken string, fn func(ctx context.Context, accessToken string) (T, error)) (T, error) {
	var result T
	err := g.Execute(ctx, accessToken, func(ctx context.Context, token string) error {
		value, err := fn(ctx, token)
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	return result, err
}

// FetchSession is Fetch with the stored access token
func FetchSession[T any](ctx context.Context, g *Gateway, fn func(ctx context.Context, accessToken string) (T, error)) (T, error) {
	return Fetch(ctx, g, g.tokens.AccessToken(ctx), fn)
}

func (g *Gateway) attempt(ctx context.Context, accessToken string, fn RequestFunc) error {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	return fn(ctx, accessToken)
}

func (g *Gateway) refresh(ctx context.Context) (*session.TokenSet, error) {
	current, err := g.tokens.Load(ctx)
	if err != nil {
		g.metrics.GatewayRefresh(false)
		return nil, err
	}
	if current == nil || current.Refresh == "" {
		g.metrics.GatewayRefresh(false)
		return nil, errNoRefreshToken
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	fresh, err := g.refresher.RefreshTokens(ctx, current.Refresh)
	if err != nil {
		g.metrics.GatewayRefresh(false)
		return nil, err
	}
	if !fresh.HasAccess() {
		g.metrics.GatewayRefresh(false)
		return nil, session.ErrNoTokens
	}

	// without rotation the backend only returns a new access token
	if fresh.Refresh == "" {
		fresh.Refresh = current.Refresh
	}
	if fresh.UserID == nil {
		fresh.UserID = current.UserID
	}

	if err := g.tokens.Save(ctx, fresh); err != nil {
		g.logger.WithError(err).Warn("Failed to persist refreshed token set")
	}

	g.metrics.GatewayRefresh(true)
	g.logger.Debug("Access token refreshed")
	return fresh, nil
}

func (g *Gateway) forget(ctx context.Context) {
	if err := g.tokens.Delete(ctx); err != nil {
		g.logger.WithError(err).Error("Failed to delete token set")
	}
}
