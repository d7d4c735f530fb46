// Package twitter posts tweets through the X API v2 with OAuth 1.0a user
// context signing.
package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dghubble/oauth1"

	"github.com/donaldgifford/social-post/internal/apierr"
	"github.com/donaldgifford/social-post/internal/metrics"
	"github.com/donaldgifford/social-post/pkg/logger"
)

const (
	platform = "twitter"

	// MaxTweetLength is the limit in Unicode code points.
	MaxTweetLength = 280

	// DefaultAPIURL is the X API host.
	DefaultAPIURL = "https://api.x.com"

	statusURLPrefix = "https://x.com/i/status/"
)

var (
	// ErrTooLong is returned for text over MaxTweetLength code points.
	ErrTooLong = errors.New("tweet too long")

	// ErrEmpty is returned for blank text.
	ErrEmpty = errors.New("tweet text is empty")
)

// ValidateText checks text before any request is built.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmpty
	}
	if n := utf8.RuneCountInString(text); n > MaxTweetLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrTooLong, n, MaxTweetLength)
	}
	return nil
}

// Tweet is a created tweet.
type Tweet struct {
	ID   string          `json:"id"`
	Text string          `json:"text"`
	URL  string          `json:"url"`
	Raw  json.RawMessage `json:"raw"`
}

// Credentials are the four static OAuth 1.0a values of a user-context app.
type Credentials struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

type createRequest struct {
	Text  string        `json:"text"`
	Reply *replySetting `json:"reply,omitempty"`
}

type replySetting struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

type createResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// Client posts tweets.
type Client struct {
	apiURL string
	base   *http.Client
	http   *http.Client
	logger *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithAPIURL overrides the API host.
func WithAPIURL(u string) Option {
	return func(c *Client) {
		c.apiURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets the client that signed requests are sent through.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.base = hc
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.OrDiscard(l)
	}
}

// NewClient creates a client that signs every request with creds.
func NewClient(creds Credentials, opts ...Option) *Client {
	c := &Client{
		apiURL: DefaultAPIURL,
		base:   &http.Client{Timeout: 30 * time.Second},
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, c.base)
	c.http = config.Client(ctx, token)
	c.http.Timeout = c.base.Timeout

	return c
}

// Post publishes text, as a reply when replyTo is set.
func (c *Client) Post(ctx context.Context, text, replyTo string) (*Tweet, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	payload := createRequest{Text: text}
	if replyTo != "" {
		payload.Reply = &replySetting{InReplyToTweetID: replyTo}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding tweet: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/2/tweets", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("posting tweet", "chars", utf8.RuneCountInString(text), "reply", replyTo != "")
	body, err := apierr.Send(c.http, req, platform, "create tweet", http.StatusCreated)
	if err != nil {
		return nil, err
	}

	var resp createResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing tweet response: %w", err)
	}
	if resp.Data.ID == "" {
		return nil, fmt.Errorf("tweet response has no id: %s", body)
	}
	metrics.PublishedTotal.WithLabelValues(platform).Inc()

	return &Tweet{
		ID:   resp.Data.ID,
		Text: resp.Data.Text,
		URL:  StatusURL(resp.Data.ID),
		Raw:  body,
	}, nil
}

// StatusURL returns the public URL of a tweet.
func StatusURL(id string) string {
	return statusURLPrefix + id
}
