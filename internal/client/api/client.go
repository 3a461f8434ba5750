// Package api is the HTTP client of the authentication API. Every response
// is decoded from the {success, message} envelope; a failed envelope comes
// back as *RejectedError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/meanblog/internal/common"
)

const defaultTimeout = 10 * time.Second

type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginResponse struct {
	envelope
	Token string `json:"token"`
	User  struct {
		Username string `json:"username"`
	} `json:"user"`
}

type profileResponse struct {
	envelope
	User Profile `json:"user"`
}

// HTTPClient is safe for concurrent use; the token is shared between calls.
type HTTPClient struct {
	baseURL     string
	routePrefix string
	http        *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a client for the server at baseURL. A scheme-less
// address such as "localhost:8888" is treated as http.
func NewHTTPClient(baseURL, routePrefix string) (*HTTPClient, error) {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server address %q: %w", baseURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid server address %q: no host", baseURL)
	}

	return &HTTPClient{
		baseURL:     strings.TrimRight(u.String(), "/"),
		routePrefix: "/" + strings.Trim(routePrefix, "/"),
		http:        &http.Client{Timeout: defaultTimeout},
	}, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Register(ctx context.Context, email, username, password string) (string, error) {
	body := map[string]string{"email": email, "username": username, "password": password}
	var resp envelope
	if err := c.do(ctx, http.MethodPost, c.route("register"), body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) CheckEmail(ctx context.Context, email string) (string, error) {
	var resp envelope
	if err := c.do(ctx, http.MethodGet, c.route("checkEmail", email), nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) CheckUsername(ctx context.Context, username string) (string, error) {
	var resp envelope
	if err := c.do(ctx, http.MethodGet, c.route("checkUsername", username), nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login stores the issued token on success and returns the username the
// server knows the account by.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, c.route("login"), body, &resp); err != nil {
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.User.Username, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*Profile, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodGet, c.route("profile"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, current, next string) (string, error) {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	var resp envelope
	if err := c.do(ctx, http.MethodPut, c.route("password"), body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Ping probes GET /health. The token is never sent with it.
func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp envelope
	return c.send(ctx, http.MethodGet, c.baseURL+"/health", nil, &resp, "")
}

func (c *HTTPClient) route(parts ...string) string {
	escaped := make([]string, 0, len(parts))
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	prefix := c.routePrefix
	if prefix == "/" {
		prefix = ""
	}
	return c.baseURL + prefix + "/" + strings.Join(escaped, "/")
}

func (c *HTTPClient) do(ctx context.Context, method, target string, body any, out interface{ result() envelope }) error {
	return c.send(ctx, method, target, body, out, c.Token())
}

// send encodes body as JSON and decodes the reply into out, which must embed
// envelope. Transport failures map to ErrUnavailable.
func (c *HTTPClient) send(ctx context.Context, method, target string, body any, out interface{ result() envelope }, token string) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	env := out.result()
	if !env.Success {
		if isTokenRejection(env.Message) {
			return fmt.Errorf("%w: %s", ErrUnauthorized, env.Message)
		}
		return &RejectedError{Message: env.Message}
	}
	return nil
}

func (e *envelope) result() envelope { return *e }

func isTokenRejection(msg string) bool {
	return msg == "No token provided" || strings.HasPrefix(msg, "Invalid token")
}
