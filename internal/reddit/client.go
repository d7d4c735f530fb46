// Package reddit submits posts and comments as a Reddit script app user.
package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/donaldgifford/social-post/internal/apierr"
	"github.com/donaldgifford/social-post/internal/metrics"
	"github.com/donaldgifford/social-post/pkg/logger"
)

const platform = "reddit"

// Default endpoints and identity.
const (
	DefaultTokenURL  = "https://www.reddit.com/api/v1/access_token"
	DefaultAPIURL    = "https://oauth.reddit.com"
	DefaultUserAgent = "social-post/1.0"
)

var (
	// ErrSubmitRejected is returned when Reddit answers a submit with
	// neither success nor a post URL.
	ErrSubmitRejected = errors.New("reddit rejected the submission")

	// ErrCommentRejected is returned when a comment response lists errors.
	ErrCommentRejected = errors.New("reddit rejected the comment")

	// ErrInvalidThingID is returned for a comment target without a t1_ or
	// t3_ prefix.
	ErrInvalidThingID = errors.New("thing id must start with t1_ (comment) or t3_ (post)")
)

// SubmitRequest describes a new post. A non-empty URL makes a link post;
// otherwise Text is the self post body.
type SubmitRequest struct {
	Subreddit string
	Title     string
	Text      string
	URL       string
}

// Validate checks the request locally.
func (r *SubmitRequest) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Subreddit) == "" {
		errs = append(errs, errors.New("subreddit is required"))
	}
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if r.Text != "" && r.URL != "" {
		errs = append(errs, errors.New("text and url are mutually exclusive"))
	}
	return errors.Join(errs...)
}

// Kind returns "link" or "self".
func (r *SubmitRequest) Kind() string {
	if r.URL != "" {
		return "link"
	}
	return "self"
}

// SubmitResult is the created post.
type SubmitResult struct {
	URL  string          `json:"url"`
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Raw  json.RawMessage `json:"raw"`
}

type apiResponse struct {
	Success bool `json:"success"`
	JSON    struct {
		Errors json.RawMessage `json:"errors"`
		Data   struct {
			URL  string `json:"url"`
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	} `json:"json"`
}

func (r *apiResponse) hasErrors() bool {
	e := strings.TrimSpace(string(r.JSON.Errors))
	return e != "" && e != "null" && e != "[]"
}

// Client calls the authenticated Reddit API.
type Client struct {
	tokens TokenSource
	token  *oauth2.Token
	apiURL string
	client *http.Client
	logger *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithAPIURL overrides the OAuth API base URL.
func WithAPIURL(u string) Option {
	return func(c *Client) {
		c.apiURL = strings.TrimRight(u, "/")
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.OrDiscard(l)
	}
}

// NewClient creates an API client. httpClient should come from
// NewHTTPClient so the User-Agent is set.
func NewClient(tokens TokenSource, httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		tokens: tokens,
		apiURL: DefaultAPIURL,
		client: httpClient,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit creates a link or self post.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	form := url.Values{
		"sr":       {strings.TrimPrefix(req.Subreddit, "r/")},
		"title":    {req.Title},
		"kind":     {req.Kind()},
		"resubmit": {"true"},
	}
	if req.URL != "" {
		form.Set("url", req.URL)
	} else {
		form.Set("text", req.Text)
	}

	body, err := c.post(ctx, "/api/submit", form, "submit")
	if err != nil {
		return nil, err
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing submit response: %w", err)
	}

	if !resp.Success && resp.JSON.Data.URL == "" {
		if resp.hasErrors() {
			return nil, fmt.Errorf("%w: %s", ErrSubmitRejected, resp.JSON.Errors)
		}
		return nil, fmt.Errorf("%w: %s", ErrSubmitRejected, body)
	}
	metrics.PublishedTotal.WithLabelValues(platform).Inc()

	return &SubmitResult{
		URL:  resp.JSON.Data.URL,
		ID:   resp.JSON.Data.ID,
		Name: resp.JSON.Data.Name,
		Raw:  body,
	}, nil
}

// Comment replies to a post (t3_) or a comment (t1_) and returns the raw
// response.
func (c *Client) Comment(ctx context.Context, thingID, text string) (json.RawMessage, error) {
	if !strings.HasPrefix(thingID, "t1_") && !strings.HasPrefix(thingID, "t3_") {
		return nil, fmt.Errorf("%w (got %q)", ErrInvalidThingID, thingID)
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("comment text is required")
	}

	body, err := c.post(ctx, "/api/comment", url.Values{
		"thing_id": {thingID},
		"text":     {text},
	}, "comment")
	if err != nil {
		return nil, err
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing comment response: %w", err)
	}
	if resp.hasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrCommentRejected, resp.JSON.Errors)
	}
	metrics.PublishedTotal.WithLabelValues(platform).Inc()

	return body, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, op string) ([]byte, error) {
	if c.token == nil || !c.token.Valid() {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		c.token = tok
	}

	form.Set("api_type", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)

	c.logger.Debug("reddit request", "op", op, "path", path)
	return apierr.Send(c.client, req, platform, op,
		http.StatusOK, http.StatusCreated, http.StatusAccepted)
}
