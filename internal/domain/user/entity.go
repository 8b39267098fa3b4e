// internal/domain/user/entity.go
package user

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/your-org/storefront-client/internal/domain/session"
)

// Roles known to the backend
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// Status is the moderation state of an account
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
	StatusBanned   Status = "banned"
)

// UnmarshalJSON accepts the string states and the older boolean flag
func (s *Status) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case bytes.Equal(data, []byte("true")):
		*s = StatusActive
	case bytes.Equal(data, []byte("false")):
		*s = StatusInactive
	default:
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("status must be a string or boolean: %w", err)
		}
		*s = Status(v)
	}
	return nil
}

// Valid reports whether an admin may set s
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusBanned:
		return true
	}
	return false
}

// Profile is a user account as returned by /users/me/ and the admin endpoints
type Profile struct {
	UserID   session.UserID `json:"user_id"`
	UserName string         `json:"user_name"`
	Email    string         `json:"email"`
	Role     string         `json:"role"`
	Status   Status         `json:"status"`
}

// IsSeller reports whether the account manages a shop
func (p *Profile) IsSeller() bool {
	return p.Role == RoleSeller
}

// IsActive reports whether the account may sign in
func (p *Profile) IsActive() bool {
	return p.Status == StatusActive
}

// UpdateProfileRequest carries the editable profile fields
type UpdateProfileRequest struct {
	UserName *string `json:"user_name,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// AdminUpdateRequest changes the role or moderation state of an account
type AdminUpdateRequest struct {
	Role   *string `json:"role,omitempty"`
	Status *Status `json:"status,omitempty"`
}

// Validate checks an admin update before it is sent
func (r AdminUpdateRequest) Validate() error {
	if r.Role == nil && r.Status == nil {
		return errors.New("role or status is required")
	}
	if r.Role != nil && *r.Role != RoleSeller && *r.Role != RoleBuyer {
		return fmt.Errorf("role must be %q or %q", RoleSeller, RoleBuyer)
	}
	if r.Status != nil && !r.Status.Valid() {
		return fmt.Errorf("status must be one of active, pending, banned")
	}
	return nil
}
