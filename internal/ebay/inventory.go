package ebay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/donaldgifford/social-post/internal/apierr"
	"github.com/donaldgifford/social-post/pkg/logger"
)

const (
	defaultAPIURL          = "https://api.ebay.com"
	defaultContentLanguage = "en-US"
	inventoryPath          = "/sell/inventory/v1"
)

// InventoryClient implements InventoryAPI against the eBay Sell Inventory
// API.
type InventoryClient struct {
	tokens          TokenProvider
	apiURL          string
	contentLanguage string
	client          *http.Client
	logger          *slog.Logger
}

// InventoryOption configures the InventoryClient.
type InventoryOption func(*InventoryClient)

// WithAPIURL overrides the default API base URL.
func WithAPIURL(u string) InventoryOption {
	return func(c *InventoryClient) {
		c.apiURL = strings.TrimRight(u, "/")
	}
}

// WithContentLanguage overrides the Content-Language sent on item and offer
// bodies.
func WithContentLanguage(lang string) InventoryOption {
	return func(c *InventoryClient) {
		c.contentLanguage = lang
	}
}

// WithInventoryHTTPClient overrides the default HTTP client.
func WithInventoryHTTPClient(hc *http.Client) InventoryOption {
	return func(c *InventoryClient) {
		c.client = hc
	}
}

// WithInventoryLogger sets the request logger.
func WithInventoryLogger(l *slog.Logger) InventoryOption {
	return func(c *InventoryClient) {
		c.logger = logger.OrDiscard(l)
	}
}

// NewInventoryClient creates a new Inventory API client.
func NewInventoryClient(tokens TokenProvider, opts ...InventoryOption) *InventoryClient {
	c := &InventoryClient{
		tokens:          tokens,
		apiURL:          defaultAPIURL,
		contentLanguage: defaultContentLanguage,
		client:          &http.Client{Timeout: 30 * time.Second},
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpsertInventoryItem creates or replaces the inventory item keyed by sku.
func (c *InventoryClient) UpsertInventoryItem(
	ctx context.Context,
	sku string,
	item *InventoryItem,
) error {
	u := c.apiURL + inventoryPath + "/inventory_item/" + url.PathEscape(sku)

	_, err := c.do(ctx, http.MethodPut, u, item, "create inventory item",
		http.StatusOK, http.StatusCreated, http.StatusNoContent)
	return err
}

// CreateOffer creates an unpublished offer and returns its ID. Every call
// creates a new offer.
func (c *InventoryClient) CreateOffer(ctx context.Context, offer *Offer) (string, error) {
	body, err := c.do(ctx, http.MethodPost, c.apiURL+inventoryPath+"/offer", offer,
		"create offer", http.StatusOK, http.StatusCreated)
	if err != nil {
		return "", err
	}

	var resp offerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parsing offer response: %w", err)
	}
	return resp.OfferID, nil
}

// PublishOffer publishes offerID and returns the listing ID.
func (c *InventoryClient) PublishOffer(ctx context.Context, offerID string) (string, error) {
	u := c.apiURL + inventoryPath + "/offer/" + url.PathEscape(offerID) + "/publish"

	body, err := c.do(ctx, http.MethodPost, u, nil, "publish offer", http.StatusOK)
	if err != nil {
		return "", err
	}

	var resp publishResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parsing publish response: %w", err)
	}
	return resp.ListingID, nil
}

func (c *InventoryClient) do(
	ctx context.Context,
	method, u string,
	payload any,
	op string,
	okCodes ...int,
) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	var reader io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s body: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	if payload != nil {
		req.Header.Set("Content-Language", c.contentLanguage)
	}

	c.logger.Debug("eBay request", "op", op, "method", method, "url", u)
	return apierr.Send(c.client, req, platform, op, okCodes...)
}
