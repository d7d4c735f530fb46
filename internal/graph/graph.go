// Package graph is a small Facebook Graph API client shared by the Facebook
// page and Instagram publishing flows. Every call carries the access token
// as a form field or query parameter, never as a header.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/donaldgifford/social-post/internal/apierr"
	"github.com/donaldgifford/social-post/pkg/logger"
)

// IDResponse is the body returned by Graph create and publish calls.
type IDResponse struct {
	ID string `json:"id"`
}

// Client sends form posts and queries to a versioned Graph API root.
type Client struct {
	baseURL  string
	token    string
	platform string
	client   *http.Client
	logger   *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Client) {
		g.client = c
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Client) {
		g.logger = logger.OrDiscard(l)
	}
}

// NewClient creates a Graph client rooted at baseURL (for example
// https://graph.facebook.com/v22.0). platform labels the call metrics.
func NewClient(baseURL, accessToken, platform string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    accessToken,
		platform: platform,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post sends a form-encoded POST to path and returns the 200 response body.
func (c *Client) Post(ctx context.Context, path string, form url.Values, op string) ([]byte, error) {
	body := c.withToken(form)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), strings.NewReader(body.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Debug("graph request", "op", op, "method", http.MethodPost, "path", path)
	return apierr.Send(c.client, req, c.platform, op)
}

// Get sends a GET to path with query and returns the 200 response body.
func (c *Client) Get(ctx context.Context, path string, query url.Values, op string) ([]byte, error) {
	q := c.withToken(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path)+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	c.logger.Debug("graph request", "op", op, "method", http.MethodGet, "path", path)
	return apierr.Send(c.client, req, c.platform, op)
}

// PostForID is Post followed by decoding an IDResponse.
func (c *Client) PostForID(ctx context.Context, path string, form url.Values, op string) (string, []byte, error) {
	body, err := c.Post(ctx, path, form, op)
	if err != nil {
		return "", nil, err
	}

	var resp IDResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", nil, fmt.Errorf("parsing %s response: %w", op, err)
	}
	if resp.ID == "" {
		return "", nil, fmt.Errorf("%s response has no id: %s", op, body)
	}
	return resp.ID, body, nil
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) withToken(v url.Values) url.Values {
	out := url.Values{}
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	out.Set("access_token", c.token)
	return out
}
