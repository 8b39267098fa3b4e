// internal/domain/session/entity.go
package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Storage keys and owner markers
const (
	TokensKey     = "auth_tokens"
	GuestOwner    = "guest"
	CartKeyPrefix = "cart_"
)

// UserID is an id the backend may send as a JSON number or a JSON string
type UserID string

// UnmarshalJSON accepts both 42 and "42"
func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user_id must be a number or string: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// MarshalJSON writes canonical integer ids back as numbers; anything else,
// "007" included, stays a string
func (id UserID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

// TokenSet is the current authentication session
type TokenSet struct {
	Access  string  `json:"access"`
	Refresh string  `json:"refresh"`
	UserID  *UserID `json:"user_id,omitempty"`
}

// HasAccess reports whether the set carries a usable access token
func (t *TokenSet) HasAccess() bool {
	return t != nil && strings.TrimSpace(t.Access) != ""
}

// ResolutionMode records which step of the owner fallback chain was used
type ResolutionMode int

const (
	ModeGuest ResolutionMode = iota
	ModeStructured
	ModeClaim
	ModeRawToken
)

func (m ResolutionMode) String() string {
	switch m {
	case ModeGuest:
		return "guest"
	case ModeStructured:
		return "user_id"
	case ModeClaim:
		return "token_claim"
	case ModeRawToken:
		return "raw_token"
	default:
		return "unknown"
	}
}

// Degraded reports whether the owner id is the raw access token
func (m ResolutionMode) Degraded() bool {
	return m == ModeRawToken
}

// PartitionKey returns the storage key of an owner's cart
func PartitionKey(owner string) string {
	return CartKeyPrefix + owner
}
