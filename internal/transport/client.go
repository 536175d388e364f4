package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/toolcompare/pkg/constants"
	"github.com/agentstation/toolcompare/pkg/errors"
	"github.com/agentstation/toolcompare/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http      *http.Client
	auth      Authenticator
	token     string
	baseURL   *url.URL
	userAgent string
}

// Option configures a Client.
type Option func(*Client) error

// WithToken sets the token passed to the authenticator.
func WithToken(token string) Option {
	return func(c *Client) error {
		c.token = token
		return nil
	}
}

// WithAuthenticator sets how the token is applied. Defaults to BearerAuth.
func WithAuthenticator(auth Authenticator) Option {
	return func(c *Client) error {
		if auth == nil {
			auth = &NoAuth{}
		}
		c.auth = auth
		return nil
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout <= 0 {
			return &errors.ValidationError{Field: "timeout", Value: timeout, Message: "must be positive"}
		}
		c.http.Timeout = timeout
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc != nil {
			c.http = hc
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua != "" {
			c.userAgent = ua
		}
		return nil
	}
}

// New creates a new transport client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, &errors.ConfigError{Component: "transport", Message: "invalid base URL " + baseURL, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &errors.ConfigError{Component: "transport", Message: "base URL must be http or https: " + baseURL}
	}

	c := &Client{
		http:      &http.Client{Timeout: DefaultHTTPTimeout},
		auth:      &BearerAuth{},
		baseURL:   u,
		userAgent: constants.DefaultUserAgent,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// URL resolves path segments against the base URL, escaping each segment.
func (c *Client) URL(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.baseURL.JoinPath(escaped...).String()
}

// Do performs an HTTP request with authentication, correlation and common headers applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.token != "" {
		c.auth.Apply(req, c.token)
	}

	requestID := logging.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(constants.HeaderRequestID, requestID)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	event := logging.FromContext(ctx).Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start))
	if err != nil {
		event.Err(err).Msg("Request failed")
		return nil, err
	}
	event.Int("status", resp.StatusCode).Msg("Request completed")
	return resp, nil
}

// Get performs a GET request against the joined path.
func (c *Client) Get(ctx context.Context, segments ...string) (*http.Response, error) {
	return c.send(ctx, http.MethodGet, nil, segments...)
}

// PostJSON performs a POST request with body encoded as JSON.
func (c *Client) PostJSON(ctx context.Context, body any, segments ...string) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.WrapParse("json", "request body", err)
	}
	return c.send(ctx, http.MethodPost, bytes.NewReader(data), segments...)
}

// Delete performs a DELETE request against the joined path.
func (c *Client) Delete(ctx context.Context, segments ...string) (*http.Response, error) {
	return c.send(ctx, http.MethodDelete, nil, segments...)
}

func (c *Client) send(ctx context.Context, method string, body io.Reader, segments ...string) (*http.Response, error) {
	target := c.URL(segments...)
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+target, err)
	}
	return c.Do(ctx, req)
}
