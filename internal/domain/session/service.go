// internal/domain/session/service.go
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrNoTokens is returned when the backend accepted a login but sent no tokens
var ErrNoTokens = errors.New("backend returned no access token")

// Authenticator exchanges credentials for a token set
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*TokenSet, error)
	Register(ctx context.Context, userName, email, password string) (*TokenSet, error)
}

// Identity describes who the session currently acts as
type Identity struct {
	Owner         string `json:"owner"`
	Mode          string `json:"resolution"`
	Authenticated bool   `json:"authenticated"`
}

// Service handles the session lifecycle
type Service struct {
	tokens *TokenStore
	auth   Authenticator
	logger *logrus.Logger
}

// NewService creates a new session service
func NewService(tokens *TokenStore, auth Authenticator, logger *logrus.Logger) *Service {
	return &Service{
		tokens: tokens,
		auth:   auth,
		logger: logger,
	}
}

// Login authenticates and persists the resulting token set
func (s *Service) Login(ctx context.Context, email, password string) (*Identity, error) {
	tokens, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !tokens.HasAccess() {
		return nil, ErrNoTokens
	}

	if err := s.tokens.Save(ctx, tokens); err != nil {
		return nil, err
	}

	identity := s.identity(tokens)
	s.logger.WithField("owner", identity.Owner).Info("Logged in")
	return identity, nil
}

// Register creates an account. When the backend answers with tokens the
// session is logged in right away.
func (s *Service) Register(ctx context.Context, userName, email, password string) (*Identity, error) {
	tokens, err := s.auth.Register(ctx, userName, email, password)
	if err != nil {
		return nil, err
	}
	if !tokens.HasAccess() {
		return s.identity(nil), nil
	}

	if err := s.tokens.Save(ctx, tokens); err != nil {
		return nil, err
	}
	return s.identity(tokens), nil
}

// Logout forgets the token set
func (s *Service) Logout(ctx context.Context) error {
	if err := s.tokens.Delete(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	s.logger.Info("Logged out")
	return nil
}

// Current reports the identity of the stored token set
func (s *Service) Current(ctx context.Context) (*Identity, error) {
	tokens, err := s.tokens.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.identity(tokens), nil
}

func (s *Service) identity(tokens *TokenSet) *Identity {
	owner, mode := DecodeOwnerID(tokens)
	return &Identity{
		Owner:         owner,
		Mode:          mode.String(),
		Authenticated: mode != ModeGuest,
	}
}
