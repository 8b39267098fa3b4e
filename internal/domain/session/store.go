// internal/domain/session/store.go
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/infrastructure/kv"
)

// origins of in-process token change notifications
const (
	localWriter     = "token-store"
	localSubscriber = "token-listener"
)

// TokenStore persists the token set under TokensKey. Listeners hear about
// changes made through this TokenStore as well as by other session contexts.
type TokenStore struct {
	kv     kv.Store
	local  *kv.Hub
	logger *logrus.Logger
}

// NewTokenStore creates a token store over the session storage
func NewTokenStore(store kv.Store, logger *logrus.Logger) *TokenStore {
	return &TokenStore{
		kv:     store,
		local:  kv.NewHub(),
		logger: logger,
	}
}

// Load returns the stored token set, or nil when there is none.
// A record that cannot be parsed is treated as absent.
func (s *TokenStore) Load(ctx context.Context) (*TokenSet, error) {
	raw, found, err := s.kv.Get(ctx, TokensKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read token set: %w", err)
	}
	if !found || raw == "" {
		return nil, nil
	}

	var tokens TokenSet
	if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
		s.logger.WithError(err).Warn("Stored token set is corrupted, treating session as anonymous")
		return nil, nil
	}

	return &tokens, nil
}

// Save replaces the stored token set
func (s *TokenStore) Save(ctx context.Context, tokens *TokenSet) error {
	if tokens == nil {
		return s.Delete(ctx)
	}

	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("failed to encode token set: %w", err)
	}

	if err := s.kv.Set(ctx, TokensKey, string(data)); err != nil {
		return fmt.Errorf("failed to store token set: %w", err)
	}

	s.local.Publish(localWriter, kv.ChangeEvent{Key: TokensKey, NewValue: string(data)})
	return nil
}

// Delete removes the stored token set
func (s *TokenStore) Delete(ctx context.Context) error {
	if err := s.kv.Remove(ctx, TokensKey); err != nil {
		return fmt.Errorf("failed to delete token set: %w", err)
	}

	s.local.Publish(localWriter, kv.ChangeEvent{Key: TokensKey, Deleted: true})
	return nil
}

// AccessToken returns the stored access token, or "" when logged out
func (s *TokenStore) AccessToken(ctx context.Context) string {
	tokens, err := s.Load(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load token set")
		return ""
	}
	if !tokens.HasAccess() {
		return ""
	}
	return tokens.Access
}

// OnChange subscribes to every token set change, local or remote
func (s *TokenStore) OnChange(fn func()) func() {
	remote := s.OnRemoteChange(fn)
	local := s.OnLocalChange(fn)

	return func() {
		remote()
		local()
	}
}

// OnLocalChange subscribes to Save and Delete through this TokenStore. fn
// runs on the caller of Save or Delete before it returns.
func (s *TokenStore) OnLocalChange(fn func()) func() {
	return s.local.Subscribe(localSubscriber, TokensKey, func(kv.ChangeEvent) { fn() })
}

// OnRemoteChange subscribes to token changes made by other session
// contexts. fn runs on the storage's notifying goroutine and must not block.
func (s *TokenStore) OnRemoteChange(fn func()) func() {
	return s.kv.OnChange(TokensKey, func(kv.ChangeEvent) { fn() })
}
