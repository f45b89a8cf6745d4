// Package api talks to the TrekPoint server over its JSON HTTP API. A single
// Client is the shell's auth provider, document store and fact source.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/provider"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/dto"
)

const (
	defaultTimeout = 30 * time.Second
	// expirySkew is how long before ExpiresAt a token is renewed.
	expirySkew = 5 * time.Second
)

type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time

	// refreshMu serialises renewals; the server rotates refresh tokens.
	refreshMu sync.Mutex
}

var (
	_ provider.AuthProvider  = (*Client)(nil)
	_ provider.DocumentStore = (*Client)(nil)
	_ provider.FactSource    = (*Client)(nil)
)

// New returns a client for the server at baseURL (e.g. http://localhost:8080).
// A nil httpClient gets a default with a 30s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		http:    httpClient,
		now:     time.Now,
	}
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*provider.Session, error) {
	var resp dto.AuthResponse
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return c.toSession(&resp), nil
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*provider.Session, error) {
	var resp dto.AuthResponse
	if _, err := c.do(ctx, http.MethodPost, "/auth/register", "", dto.RegisterRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return c.toSession(&resp), nil
}

func (c *Client) SignOut(ctx context.Context, sess *provider.Session) error {
	if sess == nil {
		return &provider.Error{Code: "auth/no-current-user", Message: "no user is signed in"}
	}
	_, err := c.authorized(ctx, sess, func(token string) (int, error) {
		return c.do(ctx, http.MethodPost, "/auth/logout", token, dto.LogoutRequest{RefreshToken: sess.RefreshToken}, nil)
	})
	return err
}

func (c *Client) SetDocument(ctx context.Context, sess *provider.Session, collection, key string, fields map[string]interface{}) error {
	if sess == nil {
		return &provider.Error{Code: "auth/no-current-user", Message: "no user is signed in"}
	}
	path := "/documents/" + url.PathEscape(collection) + "/" + url.PathEscape(key)
	_, err := c.authorized(ctx, sess, func(token string) (int, error) {
		return c.do(ctx, http.MethodPut, path, token, dto.UpsertDocumentRequest{Fields: fields}, nil)
	})
	return err
}

func (c *Client) FetchFact(ctx context.Context, sess *provider.Session) (string, error) {
	var resp dto.FactResponse
	status, err := c.authorized(ctx, sess, func(token string) (int, error) {
		return c.do(ctx, http.MethodPost, "/facts", token, nil, &resp)
	})
	if err != nil {
		return "", err
	}
	if status == http.StatusNoContent {
		return "", nil
	}
	return resp.Fact, nil
}

// authorized runs call with the session's access token. An expired token is
// renewed before the call, and a 401 reply triggers one renewal and retry.
func (c *Client) authorized(ctx context.Context, sess *provider.Session, call func(token string) (int, error)) (int, error) {
	if sess == nil {
		return call("")
	}
	if sess.RefreshToken != "" && sess.Expired(c.now(), expirySkew) {
		if err := c.refresh(ctx, sess, sess.AccessToken); err != nil {
			return 0, err
		}
	}

	sent := sess.AccessToken
	status, err := call(sent)
	if status != http.StatusUnauthorized || sess.RefreshToken == "" {
		return status, err
	}
	if rerr := c.refresh(ctx, sess, sent); rerr != nil {
		return status, err
	}
	return call(sess.AccessToken)
}

// refresh exchanges the session's refresh token for a new pair and stores it
// in sess. A session already renewed past stale is left alone.
func (c *Client) refresh(ctx context.Context, sess *provider.Session, stale string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if sess.AccessToken != stale {
		return nil
	}
	var resp dto.AuthResponse
	if _, err := c.do(ctx, http.MethodPost, "/auth/refresh", "", dto.RefreshRequest{RefreshToken: sess.RefreshToken}, &resp); err != nil {
		return err
	}
	sess.AccessToken = resp.AccessToken
	sess.RefreshToken = resp.RefreshToken
	sess.ExpiresAt = c.expiresAt(resp.ExpiresIn)
	return nil
}

func (c *Client) expiresAt(expiresIn int64) time.Time {
	if expiresIn <= 0 {
		return time.Time{}
	}
	return c.now().Add(time.Duration(expiresIn) * time.Second)
}

// do sends one request. Non-2xx replies are decoded into *provider.Error.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, decodeError(resp.StatusCode, raw)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func decodeError(status int, raw []byte) error {
	var body dto.ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		return &provider.Error{Status: status, Message: http.StatusText(status)}
	}
	return &provider.Error{Status: status, Code: body.Code, Message: body.Message}
}

func (c *Client) toSession(resp *dto.AuthResponse) *provider.Session {
	return &provider.Session{
		AccountID:    resp.User.ID.String(),
		Email:        resp.User.Email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    c.expiresAt(resp.ExpiresIn),
	}
}
