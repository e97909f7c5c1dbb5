package account

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the account backend. Failures never touch local challenge
// state; the tracker stays fully usable offline.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CheckEmail asks the backend whether an account exists for the email.
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	var resp struct {
		Exists bool `json:"exists"`
	}
	if err := c.post(ctx, "/api/auth/check-email", map[string]string{"email": email}, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

// Register creates an account on the backend.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*User, *PhysicalStats, error) {
	var resp struct {
		User  *User          `json:"user"`
		Stats *PhysicalStats `json:"stats"`
	}
	if err := c.post(ctx, "/api/auth/register", input, &resp); err != nil {
		return nil, nil, err
	}
	return resp.User, resp.Stats, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, string, error) {
	var resp struct {
		User  *User  `json:"user"`
		Token string `json:"token"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/api/auth/login", payload, &resp); err != nil {
		return nil, "", err
	}
	return resp.User, resp.Token, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Reported once to the caller; no automatic retries.
		return fmt.Errorf("could not reach the account server at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return fmt.Errorf("%s", apiErr.Message)
		}
		return fmt.Errorf("account server returned %s", resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
