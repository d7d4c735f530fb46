// Package facebook publishes posts to a Facebook Page feed.
package facebook

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/donaldgifford/social-post/internal/graph"
	"github.com/donaldgifford/social-post/internal/metrics"
	"github.com/donaldgifford/social-post/pkg/logger"
)

const (
	platform      = "facebook"
	postURLPrefix = "https://facebook.com/"
)

// PagePost is a published page feed entry.
type PagePost struct {
	ID  string          `json:"id"`
	URL string          `json:"url"`
	Raw json.RawMessage `json:"raw"`
}

// Client posts to one page.
type Client struct {
	graph  *graph.Client
	pageID string
	logger *slog.Logger
}

// NewClient creates a page client. The graph client must carry a page
// access token.
func NewClient(g *graph.Client, pageID string, l *slog.Logger) *Client {
	return &Client{graph: g, pageID: pageID, logger: logger.OrDiscard(l)}
}

// PostToPage publishes message, optionally with a link attachment.
func (c *Client) PostToPage(ctx context.Context, message, link string) (*PagePost, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errors.New("message is required")
	}

	form := url.Values{"message": {message}}
	if link != "" {
		form.Set("link", link)
	}

	c.logger.Info("posting to page", "page_id", c.pageID, "with_link", link != "")
	id, raw, err := c.graph.PostForID(ctx, c.pageID+"/feed", form, "page post")
	if err != nil {
		return nil, err
	}
	metrics.PublishedTotal.WithLabelValues(platform).Inc()

	return &PagePost{ID: id, URL: PostURL(id), Raw: raw}, nil
}

// PostURL returns the public URL of a page post.
func PostURL(id string) string {
	return postURLPrefix + id
}
