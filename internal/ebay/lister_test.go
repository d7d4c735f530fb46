package ebay_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/social-post/internal/apierr"
	"github.com/donaldgifford/social-post/internal/ebay"
	"github.com/donaldgifford/social-post/internal/ebay/mocks"
)

func validListing() *ebay.Listing {
	return &ebay.Listing{
		Title:       "Vintage camera",
		Description: "Works great",
		Condition:   "USED_GOOD",
		ImageURLs:   []string{"https://img.example.com/1.jpg"},
		Quantity:    1,
		Marketplace: "US",
		Price:       49.5,
		Currency:    "USD",
		Format:      ebay.FormatFixedPrice,
	}
}

func TestListing_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(*ebay.Listing)
		errContain string
	}{
		{name: "valid", mutate: func(*ebay.Listing) {}},
		{name: "title at limit", mutate: func(l *ebay.Listing) { l.Title = strings.Repeat("a", 80) }},
		{
			name:       "title too long",
			mutate:     func(l *ebay.Listing) { l.Title = strings.Repeat("a", 81) },
			errContain: "title is 81 chars",
		},
		{name: "empty title", mutate: func(l *ebay.Listing) { l.Title = " " }, errContain: "title is required"},
		{
			name:       "description too long",
			mutate:     func(l *ebay.Listing) { l.Description = strings.Repeat("d", 4001) },
			errContain: "description is 4001 chars",
		},
		{name: "bad condition", mutate: func(l *ebay.Listing) { l.Condition = "MINT" }, errContain: "condition must be one of"},
		{name: "bad marketplace", mutate: func(l *ebay.Listing) { l.Marketplace = "JP" }, errContain: "marketplace must be one of"},
		{name: "bad format", mutate: func(l *ebay.Listing) { l.Format = "CLASSIFIED" }, errContain: "format must be one of"},
		{name: "no images", mutate: func(l *ebay.Listing) { l.ImageURLs = nil }, errContain: "at least one image"},
		{name: "zero price", mutate: func(l *ebay.Listing) { l.Price = 0 }, errContain: "price must be a positive finite amount"},
		{name: "NaN price", mutate: func(l *ebay.Listing) { l.Price = math.NaN() }, errContain: "price must be a positive finite amount"},
		{name: "infinite price", mutate: func(l *ebay.Listing) { l.Price = math.Inf(1) }, errContain: "price must be a positive finite amount"},
		{name: "zero quantity", mutate: func(l *ebay.Listing) { l.Quantity = 0 }, errContain: "quantity must be at least 1"},
		{name: "no currency", mutate: func(l *ebay.Listing) { l.Currency = "" }, errContain: "currency is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := validListing()
			tt.mutate(l)
			err := l.Validate()

			if tt.errContain == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContain)
		})
	}
}

func TestNewSKU(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^SKU-[0-9A-F]{8}$`)
	a, b := ebay.NewSKU(), ebay.NewSKU()
	assert.Regexp(t, re, a)
	assert.Regexp(t, re, b)
	assert.NotEqual(t, a, b)
}

func TestLister_List(t *testing.T) {
	t.Parallel()

	api := mocks.NewMockInventoryAPI(t)
	l := validListing()
	l.SKU = "SKU-FIXED"
	l.Aspects = map[string][]string{"Brand": {"Canon"}}

	api.EXPECT().
		UpsertInventoryItem(mock.Anything, "SKU-FIXED", mock.MatchedBy(func(item *ebay.InventoryItem) bool {
			return item.Product.Title == "Vintage camera" &&
				item.Product.Aspects["Brand"][0] == "Canon" &&
				item.Availability.ShipToLocationAvailability.Quantity == 1
		})).
		Return(nil).Once()
	api.EXPECT().
		CreateOffer(mock.Anything, mock.MatchedBy(func(o *ebay.Offer) bool {
			return o.SKU == "SKU-FIXED" &&
				o.MarketplaceID == "EBAY_US" &&
				o.PricingSummary.Price.Value == "49.50" &&
				o.ListingDuration == "GTC"
		})).
		Return("offer-1", nil).Once()
	api.EXPECT().PublishOffer(mock.Anything, "offer-1").Return("110553", nil).Once()

	res, err := ebay.NewLister(api, nil).List(context.Background(), l)
	require.NoError(t, err)
	assert.Equal(t, &ebay.ListResult{
		SKU:        "SKU-FIXED",
		OfferID:    "offer-1",
		ListingID:  "110553",
		ListingURL: "https://www.ebay.com/itm/110553",
	}, res)
}

func TestLister_OfferFailureSkipsPublish(t *testing.T) {
	t.Parallel()

	api := mocks.NewMockInventoryAPI(t)
	api.EXPECT().UpsertInventoryItem(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	api.EXPECT().CreateOffer(mock.Anything, mock.Anything).Return("", &apierr.StatusError{
		Op:         "create offer",
		StatusCode: http.StatusBadRequest,
		Body:       `{"errors":[{"message":"Invalid category"}]}`,
	}).Once()

	_, err := ebay.NewLister(api, nil).List(context.Background(), validListing())
	require.Error(t, err)

	var se *apierr.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Contains(t, err.Error(), "Invalid category")
	api.AssertNotCalled(t, "PublishOffer", mock.Anything, mock.Anything)
}

func TestLister_InvalidListingMakesNoCalls(t *testing.T) {
	t.Parallel()

	api := mocks.NewMockInventoryAPI(t)
	l := validListing()
	l.Price = -1

	_, err := ebay.NewLister(api, nil).List(context.Background(), l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid listing")
	api.AssertNotCalled(t, "UpsertInventoryItem", mock.Anything, mock.Anything, mock.Anything)
}

// Draft mode end to end: exactly one inventory item call and one offer call.
func TestLister_DraftOverHTTP(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		mu.Unlock()

		switch {
		case r.Method == http.MethodPut:
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/sell/inventory/v1/offer":
			var offer ebay.Offer
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&offer))
			assert.Equal(t, "AUCTION", offer.Format)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"offerId":"draft-offer"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := ebay.NewInventoryClient(newTokens(t), ebay.WithAPIURL(srv.URL))
	l := validListing()
	l.Draft = true
	l.Format = ebay.FormatAuction

	res, err := ebay.NewLister(client, nil).List(context.Background(), l)
	require.NoError(t, err)

	assert.Equal(t, "draft-offer", res.OfferID)
	assert.Empty(t, res.ListingID)
	assert.Empty(t, res.ListingURL)
	assert.Regexp(t, `^SKU-[0-9A-F]{8}$`, res.SKU)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, paths, 2)
	assert.Equal(t, "PUT /sell/inventory/v1/inventory_item/"+res.SKU, paths[0])
	assert.Equal(t, "POST /sell/inventory/v1/offer", paths[1])
}
