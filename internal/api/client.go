// Package api is the marketplace backend client. Every call takes the
// bearer token explicitly so it can be used as a gateway request function.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/your-org/storefront-client/internal/gateway"
	"github.com/your-org/storefront-client/internal/pkg/auth"
)

// maxErrorBody bounds how much of an error response is kept
const maxErrorBody = 64 << 10

// Client is the REST client for the marketplace backend
type Client struct {
	baseURL     string
	adminURL    string
	refreshPath string
	httpClient  *http.Client
}

// New creates a client. timeout bounds every HTTP exchange.
func New(baseURL, refreshPath string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		refreshPath: refreshPath,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithAdminBaseURL sets the root of the moderation endpoints, which the
// backend serves outside the API prefix.
func (c *Client) WithAdminBaseURL(adminURL string) *Client {
	c.adminURL = strings.TrimRight(adminURL, "/")
	return c
}

// errorBody covers the error shapes the backend sends
type errorBody struct {
	Code    string `json:"code"`
	Detail  string `json:"detail"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	return c.send(ctx, method, c.baseURL, path, token, body, out)
}

// doAdmin calls a moderation endpoint. Those views report some failures as
// a 200 carrying {"error": "..."}; that is turned into an HTTPError.
func (c *Client) doAdmin(ctx context.Context, method, path, token string, body, out any) error {
	if c.adminURL == "" {
		return errors.New("admin base URL is not configured")
	}

	var raw json.RawMessage
	if err := c.send(ctx, method, c.adminURL, path, token, body, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}

	var embedded struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &embedded) == nil && embedded.Error != "" {
		return &gateway.HTTPError{Status: http.StatusBadGateway, Detail: embedded.Error, Body: raw}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, base, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", auth.BearerHeader(token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	httpErr := &gateway.HTTPError{Status: resp.StatusCode, Body: raw}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		httpErr.Code = body.Code
		for _, msg := range []string{body.Detail, body.Error, body.Message} {
			if msg != "" {
				httpErr.Detail = msg
				break
			}
		}
	} else if text := strings.TrimSpace(string(raw)); text != "" && len(text) < 512 {
		httpErr.Detail = text
	}

	return httpErr
}
