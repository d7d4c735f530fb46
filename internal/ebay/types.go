package ebay

// Marketplaces maps the short codes accepted on the command line to eBay
// marketplace IDs.
var Marketplaces = map[string]string{
	"US": "EBAY_US",
	"UK": "EBAY_GB",
	"AU": "EBAY_AU",
	"CA": "EBAY_CA",
	"DE": "EBAY_DE",
	"FR": "EBAY_FR",
	"IT": "EBAY_IT",
	"ES": "EBAY_ES",
}

// MarketplaceCodes lists the Marketplaces keys in display order.
var MarketplaceCodes = []string{"US", "UK", "AU", "CA", "DE", "FR", "IT", "ES"}

// Conditions lists the inventory item condition enum values.
var Conditions = []string{
	"NEW",
	"LIKE_NEW",
	"NEW_OTHER",
	"NEW_WITH_DEFECTS",
	"CERTIFIED_REFURBISHED",
	"SELLER_REFURBISHED",
	"USED_EXCELLENT",
	"USED_VERY_GOOD",
	"USED_GOOD",
	"USED_ACCEPTABLE",
	"FOR_PARTS_OR_NOT_WORKING",
}

// Listing formats.
const (
	FormatFixedPrice = "FIXED_PRICE"
	FormatAuction    = "AUCTION"
)

// Formats lists the accepted listing formats.
var Formats = []string{FormatFixedPrice, FormatAuction}

// InventoryItem is the createOrReplaceInventoryItem request body.
type InventoryItem struct {
	Availability Availability `json:"availability"`
	Condition    string       `json:"condition"`
	Product      Product      `json:"product"`
}

// Availability holds the ship-to-location quantity.
type Availability struct {
	ShipToLocationAvailability ShipToLocationAvailability `json:"shipToLocationAvailability"`
}

// ShipToLocationAvailability holds the available quantity.
type ShipToLocationAvailability struct {
	Quantity int `json:"quantity"`
}

// Product describes the item being sold.
type Product struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	ImageURLs   []string            `json:"imageUrls"`
	Aspects     map[string][]string `json:"aspects,omitempty"`
	Brand       string              `json:"brand,omitempty"`
}

// Offer is the createOffer request body.
type Offer struct {
	SKU             string         `json:"sku"`
	MarketplaceID   string         `json:"marketplaceId"`
	Format          string         `json:"format"`
	PricingSummary  PricingSummary `json:"pricingSummary"`
	ListingDuration string         `json:"listingDuration"`
	CategoryID      string         `json:"categoryId,omitempty"`
}

// PricingSummary wraps the offer price.
type PricingSummary struct {
	Price Amount `json:"price"`
}

// Amount is an eBay monetary amount. Value is a decimal string.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type offerResponse struct {
	OfferID string `json:"offerId"`
}

type publishResponse struct {
	ListingID string `json:"listingId"`
}
