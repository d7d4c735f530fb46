package ebay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/donaldgifford/social-post/internal/metrics"
	"github.com/donaldgifford/social-post/pkg/logger"
)

const (
	maxTitleLen       = 80
	maxDescriptionLen = 4000
	listingDuration   = "GTC"
	itemURLPrefix     = "https://www.ebay.com/itm/"
)

// Listing describes one item to list.
type Listing struct {
	SKU         string // generated when empty
	Title       string
	Description string
	Condition   string
	ImageURLs   []string
	Quantity    int
	Aspects     map[string][]string
	Brand       string
	Marketplace string // short code, see Marketplaces
	Price       float64
	Currency    string
	CategoryID  string
	Format      string
	Draft       bool // stop after creating the offer
}

// ListResult carries the identifiers produced by the pipeline. ListingID
// and ListingURL are empty for drafts.
type ListResult struct {
	SKU        string `json:"sku"`
	OfferID    string `json:"offerId"`
	ListingID  string `json:"listingId,omitempty"`
	ListingURL string `json:"listingUrl,omitempty"`
}

// Validate checks l locally, before any network call.
func (l *Listing) Validate() error {
	var errs []error

	if strings.TrimSpace(l.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if n := utf8.RuneCountInString(l.Title); n > maxTitleLen {
		errs = append(errs, fmt.Errorf("title is %d chars (max %d)", n, maxTitleLen))
	}
	if strings.TrimSpace(l.Description) == "" {
		errs = append(errs, errors.New("description is required"))
	}
	if n := utf8.RuneCountInString(l.Description); n > maxDescriptionLen {
		errs = append(errs, fmt.Errorf("description is %d chars (max %d)", n, maxDescriptionLen))
	}
	if !slices.Contains(Conditions, l.Condition) {
		errs = append(errs, fmt.Errorf("condition must be one of: %s (got %q)",
			strings.Join(Conditions, ", "), l.Condition))
	}
	if _, ok := Marketplaces[l.Marketplace]; !ok {
		errs = append(errs, fmt.Errorf("marketplace must be one of: %s (got %q)",
			strings.Join(MarketplaceCodes, ", "), l.Marketplace))
	}
	if !slices.Contains(Formats, l.Format) {
		errs = append(errs, fmt.Errorf("format must be one of: %s (got %q)",
			strings.Join(Formats, ", "), l.Format))
	}
	if len(l.ImageURLs) == 0 {
		errs = append(errs, errors.New("at least one image URL is required"))
	}
	if math.IsNaN(l.Price) || math.IsInf(l.Price, 0) || l.Price <= 0 {
		errs = append(errs, fmt.Errorf("price must be a positive finite amount (got %v)", l.Price))
	}
	if l.Quantity < 1 {
		errs = append(errs, fmt.Errorf("quantity must be at least 1 (got %d)", l.Quantity))
	}
	if strings.TrimSpace(l.Currency) == "" {
		errs = append(errs, errors.New("currency is required"))
	}

	return errors.Join(errs...)
}

// NewSKU returns a fresh client-side SKU.
func NewSKU() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "SKU-" + strings.ToUpper(id[:8])
}

// ListingURL returns the public item page for a listing ID.
func ListingURL(listingID string) string {
	return itemURLPrefix + listingID
}

// Lister runs the inventory item → offer → publish pipeline.
type Lister struct {
	api    InventoryAPI
	logger *slog.Logger
}

// NewLister creates a Lister. A nil logger discards progress.
func NewLister(api InventoryAPI, l *slog.Logger) *Lister {
	return &Lister{api: api, logger: logger.OrDiscard(l)}
}

// List validates l and runs the pipeline. Each step runs only if the
// previous one succeeded; nothing is rolled back on failure.
func (s *Lister) List(ctx context.Context, l *Listing) (*ListResult, error) {
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid listing: %w", err)
	}

	sku := l.SKU
	if sku == "" {
		sku = NewSKU()
	}
	marketplace := Marketplaces[l.Marketplace]
	res := &ListResult{SKU: sku}

	s.logger.Info("creating inventory item", "sku", sku)
	if err := s.api.UpsertInventoryItem(ctx, sku, buildInventoryItem(l)); err != nil {
		return nil, fmt.Errorf("inventory item %s: %w", sku, err)
	}

	s.logger.Info("creating offer", "marketplace", marketplace)
	offerID, err := s.api.CreateOffer(ctx, buildOffer(l, sku, marketplace))
	if err != nil {
		return nil, fmt.Errorf("offer for %s: %w", sku, err)
	}
	res.OfferID = offerID
	s.logger.Info("offer created", "offer_id", offerID)

	if l.Draft {
		s.logger.Info("draft offer created, not publishing", "offer_id", offerID)
		return res, nil
	}

	s.logger.Info("publishing listing", "offer_id", offerID)
	listingID, err := s.api.PublishOffer(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("publish offer %s: %w", offerID, err)
	}
	res.ListingID = listingID
	res.ListingURL = ListingURL(listingID)
	metrics.PublishedTotal.WithLabelValues(platform).Inc()

	return res, nil
}

func buildInventoryItem(l *Listing) *InventoryItem {
	return &InventoryItem{
		Availability: Availability{
			ShipToLocationAvailability: ShipToLocationAvailability{Quantity: l.Quantity},
		},
		Condition: l.Condition,
		Product: Product{
			Title:       l.Title,
			Description: l.Description,
			ImageURLs:   l.ImageURLs,
			Aspects:     l.Aspects,
			Brand:       l.Brand,
		},
	}
}

func buildOffer(l *Listing, sku, marketplace string) *Offer {
	return &Offer{
		SKU:           sku,
		MarketplaceID: marketplace,
		Format:        l.Format,
		PricingSummary: PricingSummary{
			Price: Amount{
				Value:    strconv.FormatFloat(l.Price, 'f', 2, 64),
				Currency: l.Currency,
			},
		},
		ListingDuration: listingDuration,
		CategoryID:      l.CategoryID,
	}
}
