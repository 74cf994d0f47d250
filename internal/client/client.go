// Package client is the storefront's API client for the auth endpoints.
// Authentication is explicit per request: every call reads the current
// session from the session store and attaches the token to that one
// request. No process-wide default header is ever mutated.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopmate/shopmate-go/internal/model"
	"github.com/shopmate/shopmate-go/internal/session"
)

var (
	// ErrRequestFailed carries the server's message for a success:false
	// response.
	ErrRequestFailed = errors.New("request failed")
	ErrUnauthorized  = errors.New("unauthorized")
)

// Client calls the Shopmate auth API.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *session.Store
}

// New creates a Client against baseURL, using sessions for token storage.
func New(baseURL string, sessions *session.Store) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 15 * time.Second},
		sessions: sessions,
	}
}

// Register creates an account. The new user is not signed in; call Login
// afterward.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.PublicUser, error) {
	var env model.Envelope
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", req, &env); err != nil {
		return model.PublicUser{}, err
	}
	if !env.Success || env.User == nil {
		return model.PublicUser{}, fmt.Errorf("%w: %s", ErrRequestFailed, env.Message)
	}
	return *env.User, nil
}

// Login authenticates and stores the resulting session, so subsequent
// calls from this client are authenticated.
func (c *Client) Login(ctx context.Context, email, password string) (model.PublicUser, error) {
	var resp model.LoginResponse
	req := model.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp); err != nil {
		return model.PublicUser{}, err
	}
	if !resp.Success {
		return model.PublicUser{}, fmt.Errorf("%w: %s", ErrRequestFailed, resp.Message)
	}

	user := resp.User
	if err := c.sessions.Set(session.Session{User: &user, Token: resp.Token}); err != nil {
		return model.PublicUser{}, err
	}
	return user, nil
}

// ForgotPassword resets the password using the security-question answer.
func (c *Client) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	var env model.Envelope
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/forgot-password", req, &env); err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("%w: %s", ErrRequestFailed, env.Message)
	}
	return nil
}

// UpdateProfile updates the signed-in user's profile and refreshes the user
// portion of the stored session. The token is left as is.
func (c *Client) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (model.PublicUser, error) {
	var env model.Envelope
	if err := c.do(ctx, http.MethodPut, "/api/v1/auth/profile", req, &env); err != nil {
		return model.PublicUser{}, err
	}
	if !env.Success || env.UpdatedUser == nil {
		return model.PublicUser{}, fmt.Errorf("%w: %s", ErrRequestFailed, env.Message)
	}

	if err := c.sessions.SetUser(*env.UpdatedUser); err != nil {
		return model.PublicUser{}, err
	}
	return *env.UpdatedUser, nil
}

// Me fetches the signed-in user's public projection from the server.
func (c *Client) Me(ctx context.Context) (model.PublicUser, error) {
	var env model.Envelope
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &env); err != nil {
		return model.PublicUser{}, err
	}
	if !env.Success || env.User == nil {
		return model.PublicUser{}, fmt.Errorf("%w: %s", ErrRequestFailed, env.Message)
	}
	return *env.User, nil
}

// Logout discards the stored session.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

// do sends one JSON request, attaching the current session token to the
// Authorization header when present, and decodes the response body into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// The server expects the raw token value, no scheme prefix.
	if sess := c.sessions.Current(); sess.Authenticated() {
		req.Header.Set("Authorization", sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
