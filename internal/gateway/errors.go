// internal/gateway/errors.go
package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Structured error codes sent by the backend with a 401
const (
	CodeTokenNotValid = "token_not_valid"
	CodeUserInactive  = "user_inactive"
)

// Classified failures produced by the gateway
var (
	ErrSessionExpired  = errors.New("session expired, please log in again")
	ErrAccountDisabled = errors.New("account has been disabled")
	ErrLoginRequired   = errors.New("please log in")
)

// HTTPError is a failed backend call carrying its status and the optional
// structured error body.
type HTTPError struct {
	Status int    `json:"status"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
	Body   []byte `json:"-"`
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Detail
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("request failed (%d %s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("request failed (%d): %s", e.Status, msg)
}

// NewHTTPError creates an HTTPError
func NewHTTPError(status int, code, detail string) *HTTPError {
	return &HTTPError{Status: status, Code: code, Detail: detail}
}

// StatusOf returns the HTTP status carried by err, or 0
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}
