// Package client is a small HTTP client for the link API. It separates
// failures that never reached the server (ErrNetwork) from server answers
// (*StatusError), which is what the offline queue and the sync orchestrator
// need to decide between retrying later and giving up on a submission.
package client

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

	"go.uber.org/zap"

	"github.com/shorturlproject/shorturl/internal/models"
)

// DefaultTimeout bounds a single API call.
const DefaultTimeout = 10 * time.Second

// ErrNetwork marks a request that never got a response from the server.
var ErrNetwork = errors.New("network error")

// StatusError is a non-2xx answer from the server.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded %d", e.Status)
	}
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
}

// Transient reports whether the request may succeed unchanged later: a 5xx,
// a timeout or rate limit, or a rejected token that a fresh login renews.
func (e *StatusError) Transient() bool {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return e.Status >= http.StatusInternalServerError
}

// IsPermanent reports whether err is a 4xx answer that retrying the same
// request cannot fix.
func IsPermanent(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && !se.Transient()
}

// Client talks to one server.
type Client struct {
	base   string
	token  string
	http   *http.Client
	logger *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for the server at baseURL. token may be empty for
// the public endpoints.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		token:  token,
		http:   &http.Client{Timeout: DefaultTimeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Shorten submits longURL on behalf of the token owner.
func (c *Client) Shorten(ctx context.Context, longURL string) (models.ShortenResponse, error) {
	var out models.ShortenResponse
	err := c.do(ctx, http.MethodPost, "/api/shorten", models.ShortenRequest{LongURL: longURL}, &out)
	return out, err
}

// Links lists the caller's active links.
func (c *Client) Links(ctx context.Context) (models.LinksResponse, error) {
	var out models.LinksResponse
	err := c.do(ctx, http.MethodGet, "/api/user/links", nil, &out)
	return out, err
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", models.Credentials{Username: username, Password: password}, &out)
	return out, err
}

// Health probes GET /api/health.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var e models.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &StatusError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
