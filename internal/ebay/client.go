// Package ebay implements the eBay seller flow: the OAuth2
// authorization-code grant, file-backed user token refresh, and the
// Inventory API inventory item → offer → publish pipeline.
package ebay

import (
	"context"
	"strings"
)

const (
	platform = "ebay"

	// SellScope is the OAuth scope requested for Inventory API access.
	SellScope = "https://api.ebay.com/oauth/api_scope/sell.inventory"

	tokenPath     = "/identity/v1/oauth2/token"
	authorizePath = "/oauth2/authorize"
)

// TokenProvider defines the interface for obtaining OAuth2 tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// InventoryAPI is the subset of the Inventory API the listing pipeline uses.
type InventoryAPI interface {
	UpsertInventoryItem(ctx context.Context, sku string, item *InventoryItem) error
	CreateOffer(ctx context.Context, offer *Offer) (string, error)
	PublishOffer(ctx context.Context, offerID string) (string, error)
}

// TokenURL returns the OAuth token endpoint under an API base URL.
func TokenURL(apiBase string) string {
	return strings.TrimRight(apiBase, "/") + tokenPath
}

// AuthorizeURL returns the consent endpoint under an auth base URL.
func AuthorizeURL(authBase string) string {
	return strings.TrimRight(authBase, "/") + authorizePath
}
