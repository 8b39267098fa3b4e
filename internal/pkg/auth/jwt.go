// internal/pkg/auth/jwt.go
package auth

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names that may carry the user id, in lookup order
var userIDClaims = []string{"user_id", "sub"}

// DecodeUserID reads the user id from an access token's payload.
// The signature is NOT verified: the backend is the only party that trusts
// the token, the client only needs it to pick a storage partition.
func DecodeUserID(tokenString string) (string, error) {
	parser := jwt.NewParser(jwt.WithJSONNumber())

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return "", fmt.Errorf("failed to decode token: %w", err)
	}

	for _, name := range userIDClaims {
		raw, ok := claims[name]
		if !ok || raw == nil {
			continue
		}
		switch v := raw.(type) {
		case json.Number:
			return v.String(), nil
		case string:
			if v = strings.TrimPrefix(v, "user:"); v != "" {
				return v, nil
			}
		case float64:
			return fmt.Sprintf("%.0f", v), nil
		}
	}

	return "", fmt.Errorf("token carries no user id claim")
}

// BearerHeader formats an Authorization header value
func BearerHeader(token string) string {
	return "Bearer " + token
}
