// internal/domain/session/owner.go
package session

import (
	"github.com/your-org/storefront-client/internal/pkg/auth"
)

// DecodeOwnerID resolves the cart owner of a token set.
//
// Fallback chain: the structured user_id field, then the user id claim of
// the access token, then the raw access token itself. No access token means
// the guest owner.
func DecodeOwnerID(tokens *TokenSet) (string, ResolutionMode) {
	if !tokens.HasAccess() {
		return GuestOwner, ModeGuest
	}

	if tokens.UserID != nil && *tokens.UserID != "" {
		return string(*tokens.UserID), ModeStructured
	}

	if id, err := auth.DecodeUserID(tokens.Access); err == nil {
		return id, ModeClaim
	}

	return tokens.Access, ModeRawToken
}
