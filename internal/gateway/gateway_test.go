package gateway

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/infrastructure/kv"
	"github.com/your-org/storefront-client/internal/pkg/logger"
	"github.com/your-org/storefront-client/internal/pkg/metrics"
)

type fakeRefresher struct {
	calls  int
	tokens *session.TokenSet
	err    error
	seen   string
}

func (f *fakeRefresher) RefreshTokens(_ context.Context, refreshToken string) (*session.TokenSet, error) {
	f.calls++
	f.seen = refreshToken
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.tokens
	return &copied, nil
}

type fixture struct {
	tokens    *session.TokenStore
	refresher *fakeRefresher
	redirects []string
	metrics   *metrics.Metrics
	gateway   *Gateway
}

func newFixture(t *testing.T, stored *session.TokenSet) *fixture {
	t.Helper()

	f := &fixture{
		tokens:    session.NewTokenStore(kv.NewMemory(), logger.Discard()),
		refresher: &fakeRefresher{tokens: &session.TokenSet{Access: "fresh-access"}},
		metrics:   metrics.NewMetrics(prometheus.NewRegistry()),
	}
	if stored != nil {
		require.NoError(t, f.tokens.Save(context.Background(), stored))
	}

	f.gateway = New(f.tokens, f.refresher, logger.Discard(), Options{
		HomePath: "/home",
		Timeout:  time.Second,
		Metrics:  f.metrics,
		Navigator: NavigatorFunc(func(_ context.Context, path string) {
			f.redirects = append(f.redirects, path)
		}),
	})
	return f
}

func (f *fixture) stored(t *testing.T) *session.TokenSet {
	t.Helper()
	tokens, err := f.tokens.Load(context.Background())
	require.NoError(t, err)
	return tokens
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t, &session.TokenSet{Access: "old", Refresh: "r"})

	var used string
	err := f.gateway.Execute(context.Background(), "old", func(_ context.Context, token string) error {
		used = token
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "old", used)
	assert.Zero(t, f.refresher.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.GatewayRequests.WithLabelValues("ok")))
}

func TestExecute_RefreshesOnceAndRetries(t *testing.T) {
	f := newFixture(t, &session.TokenSet{Access: "old", Refresh: "r"})

	var tokensUsed []string
	result, err := Fetch(context.Background(), f.gateway, "old", func(_ context.Context, token string) (string, error) {
		tokensUsed = append(tokensUsed, token)
		if len(tokensUsed) == 1 {
			return "", NewHTTPError(http.StatusUnauthorized, CodeTokenNotValid, "Token is invalid or expired")
		}
		return "payload", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "payload", result)
	assert.Equal(t, 1, f.refresher.calls)
	assert.Equal(t, "r", f.refresher.seen)
	assert.Equal(t, []string{"old", "fresh-access"}, tokensUsed)

	// refresh token kept when the backend does not rotate it
	assert.Equal(t, &session.TokenSet{Access: "fresh-access", Refresh: "r"}, f.stored(t))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.GatewayRefreshes.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.GatewayRequests.WithLabelValues("refreshed")))
}

func TestExecute_RotatedRefreshTokenIsStored(t *testing.T) {
	f := newFixture(t, &session.TokenSet{Access: "old", Refresh: "r1"})
	f.refresher.tokens = &session.TokenSet{Access: "a2", Refresh: "r2"}

	calls := 0
	err := f.gateway.Execute(context.Background(), "old", func(context.Context, string) error {
		calls++
		if calls == 1 {
			return NewHTTPError(http.StatusUnauthorized, CodeTokenNotValid, "")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, &session.TokenSet{Access: "a2", Refresh: "r2"}, f.stored(t))
}

func TestExecute_RetryFailureIsNotRetriedAgain(t *testing.T) {
	f := newFixture(t, &session.TokenSet{Access: "old", Refresh: "r"})

	calls := 0
	err := f.gateway.Execute(context.Background(), "old", func(context.Context, string) error {
		calls++
		return NewHTTPError(http.StatusUnauthorized, CodeTokenNotValid, "")
	})

	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, f.refresher.calls)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestExecute_RefreshFailureExpiresSession(t *testing.T) {
	f := newFixture(t, &session.TokenSet{Access: "old", Refresh: "r"})
	f.refresher.err = NewHTTPError(http.StatusUnauthorized, CodeTokenNotValid, "refresh expired")

	calls := 0
	err := f.gateway.Execute(context.Background(), "old", func(context.Context, string) error {
		calls++
		return NewHTTPError(http.StatusUnauthorized, CodeTokenNotValid, "")
	})

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, calls)
	assert.Nil(t, f.stored(t))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.GatewayRefreshes.WithLabelValues("failed")))
}

func TestExecute_MissingRefreshTokenExpiresSession(t *testing.T) {
	f := newFixture(t, &session.TokenSet{Access: "old"})

	err := f.gateway.Execute(context.Background(), "old", func(context.Context, string) error {
		return NewHTTPError(http.StatusUnauthorized, CodeTokenNotValid, "")
	})

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Zero(t, f.refresher.calls)
	assert.Nil(t, f.stored(t))
}

func TestExecute_UserInactive(t *testing.T) {
	f := newFixture(t, &session.TokenSet{Access: "old", Refresh: "r"})

	calls := 0
	err := f.gateway.Execute(context.Background(), "old", func(context.Context, string) error {
		calls++
		return NewHTTPError(http.StatusUnauthorized, CodeUserInactive, "User is inactive")
	})

	assert.ErrorIs(t, err, ErrAccountDisabled)
	assert.Equal(t, 1, calls)
	assert.Zero(t, f.refresher.calls)
	assert.Equal(t, []string{"/home"}, f.redirects)
	assert.Nil(t, f.stored(t))
}

func TestExecute_GenericUnauthorized(t *testing.T) {
	f := newFixture(t, &session.TokenSet{Access: "old", Refresh: "r"})

	err := f.gateway.Execute(context.Background(), "old", func(context.Context, string) error {
		return NewHTTPError(http.StatusUnauthorized, "", "Authentication credentials were not provided.")
	})

	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.Zero(t, f.refresher.calls)
	assert.Empty(t, f.redirects)
	assert.Nil(t, f.stored(t))
}

func TestExecute_OtherFailuresPropagateUnchanged(t *testing.T) {
	stored := &session.TokenSet{Access: "old", Refresh: "r"}
	f := newFixture(t, stored)

	notFound := NewHTTPError(http.StatusNotFound, "", "Not found.")
	err := f.gateway.Execute(context.Background(), "old", func(context.Context, string) error {
		return notFound
	})
	assert.Same(t, notFound, err)

	network := errors.New("connection refused")
	err = f.gateway.Execute(context.Background(), "old", func(context.Context, string) error {
		return network
	})
	assert.Same(t, network, err)

	assert.Zero(t, f.refresher.calls)
	assert.Equal(t, stored, f.stored(t))
}

func TestExecute_AppliesTimeout(t *testing.T) {
	f := newFixture(t, nil)

	err := f.gateway.Execute(context.Background(), "", func(ctx context.Context, _ string) error {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
		return nil
	})
	require.NoError(t, err)
}

func TestSession_UsesStoredToken(t *testing.T) {
	f := newFixture(t, &session.TokenSet{Access: "stored", Refresh: "r"})

	got, err := FetchSession(context.Background(), f.gateway, func(_ context.Context, token string) (string, error) {
		return token, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stored", got)

	var used string
	require.NoError(t, f.gateway.Session(context.Background(), func(_ context.Context, token string) error {
		used = token
		return nil
	}))
	assert.Equal(t, "stored", used)
}

func TestHTTPError_Error(t *testing.T) {
	assert.Equal(t, "request failed (401 token_not_valid): expired", NewHTTPError(401, CodeTokenNotValid, "expired").Error())
	assert.Equal(t, "request failed (404): Not Found", NewHTTPError(404, "", "").Error())
	assert.Zero(t, StatusOf(errors.New("plain")))
}
