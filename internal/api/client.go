// Package api is the HTTP client for the photo-sharing server.
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
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"photogrip/internal/logging"
)

var (
	// ErrUnauthorized is returned when the server rejects the session and a
	// refresh could not recover it. The stored token has been cleared.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotModified is returned for 304 responses; callers keep what they have.
	ErrNotModified = errors.New("not modified")
	// ErrNoSession is returned by endpoints that need a token when there is none.
	ErrNoSession = errors.New("not signed in")
)

// StatusError is a non-2xx response the client does not map to a sentinel
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// TokenStore holds the access token between runs
type TokenStore interface {
	Token() string
	SetToken(token string) error
	Clear() error
}

// Options configures a Client
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Tokens     TokenStore
	HTTPClient *http.Client
	Logger     logging.Logger
	// RefreshSkew refreshes a token proactively when it expires within it
	RefreshSkew time.Duration
}

// Client talks to the photo server. It is safe for concurrent use.
type Client struct {
	base    string
	http    *http.Client
	tokens  TokenStore
	log     logging.Logger
	skew    time.Duration
	refresh singleflight.Group
	now     func() time.Time
}

// New creates a client for opts.BaseURL
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	skew := opts.RefreshSkew
	if skew == 0 {
		skew = 30 * time.Second
	}
	return &Client{
		base:   strings.TrimRight(opts.BaseURL, "/"),
		http:   hc,
		tokens: opts.Tokens,
		log:    log.With("component", "api"),
		skew:   skew,
		now:    time.Now,
	}
}

// BaseURL returns the server root the client talks to
func (c *Client) BaseURL() string {
	return c.base
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// HasSession reports whether an access token is stored
func (c *Client) HasSession() bool {
	return c.token() != ""
}

type requestSpec struct {
	method  string
	path    string
	body    func() (io.Reader, string, error) // reader and content type; rebuilt on retry
	noCache bool
}

func (c *Client) newRequest(ctx context.Context, spec requestSpec, token string) (*http.Request, error) {
	var body io.Reader
	var contentType string
	if spec.body != nil {
		var err error
		body, contentType, err = spec.body()
		if err != nil {
			return nil, fmt.Errorf("build request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, spec.method, c.base+spec.path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if spec.noCache {
		req.Header.Set("Cache-Control", "no-cache")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends spec without credentials
func (c *Client) do(ctx context.Context, spec requestSpec) (*http.Response, error) {
	req, err := c.newRequest(ctx, spec, "")
	if err != nil {
		return nil, err
	}
	return c.send(req)
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	c.log.Debug("api request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get("X-Request-ID"),
		"duration", time.Since(start))
	return resp, nil
}

// doAuth sends spec with the stored token. A 401 triggers one refresh and
// one retry; a failed refresh clears the session and yields ErrUnauthorized.
// Without a token the request is sent anonymously unless required is set.
func (c *Client) doAuth(ctx context.Context, spec requestSpec, required bool) (*http.Response, error) {
	token := c.token()
	if token == "" {
		if required {
			return nil, ErrNoSession
		}
		return c.do(ctx, spec)
	}

	if c.expiresSoon(token) {
		if fresh, err := c.Refresh(ctx); err == nil {
			token = fresh
		} else if errors.Is(err, ErrUnauthorized) {
			return nil, err
		}
	}

	req, err := c.newRequest(ctx, spec, token)
	if err != nil {
		return nil, err
	}
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	drain(resp)

	fresh, err := c.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	req, err = c.newRequest(ctx, spec, fresh)
	if err != nil {
		return nil, err
	}
	resp, err = c.send(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		c.clearSession()
		return nil, ErrUnauthorized
	}
	return resp, nil
}

func (c *Client) expiresSoon(token string) bool {
	claims, err := ParseClaims(token)
	if err != nil || claims.ExpiresAt.IsZero() {
		return false
	}
	return claims.ExpiresAt.Sub(c.now()) < c.skew
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Refresh exchanges the stored token for a new one. Concurrent callers share
// a single request. A rejected refresh clears the session.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	v, err, _ := c.refresh.Do("refresh", func() (any, error) {
		token := c.token()
		if token == "" {
			return "", ErrNoSession
		}
		req, err := c.newRequest(ctx, requestSpec{method: http.MethodPost, path: "/auth/refresh"}, token)
		if err != nil {
			return "", err
		}
		resp, err := c.send(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			c.log.Warn("token refresh rejected", "status", resp.StatusCode)
			c.clearSession()
			return "", ErrUnauthorized
		}
		var out refreshResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return "", fmt.Errorf("decode refresh response: %w", err)
		}
		if out.AccessToken == "" {
			c.clearSession()
			return "", ErrUnauthorized
		}
		if err := c.tokens.SetToken(out.AccessToken); err != nil {
			return "", fmt.Errorf("store refreshed token: %w", err)
		}
		c.log.Info("token refreshed")
		return out.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) clearSession() {
	if c.tokens == nil {
		return
	}
	if err := c.tokens.Clear(); err != nil {
		c.log.Error("clear session failed", "error", err)
	}
}

// decode reads a JSON 2xx body into out, mapping other statuses to errors
func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if err := statusError(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type errorBody struct {
	Detail string `json:"detail"`
}

func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotModified:
		return ErrNotModified
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return nil
	}
	var body errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &body); err != nil || body.Detail == "" {
		body.Detail = strings.TrimSpace(string(data))
	}
	return &StatusError{Status: resp.StatusCode, Detail: body.Detail}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}

func jsonBody(v any) func() (io.Reader, string, error) {
	return func() (io.Reader, string, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func escape(id string) string {
	return url.PathEscape(id)
}
