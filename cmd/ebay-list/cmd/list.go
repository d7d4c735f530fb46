package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/social-post/internal/cli"
	"github.com/donaldgifford/social-post/internal/ebay"
)

func listCommand(app *cli.App) *cobra.Command {
	var (
		l       ebay.Listing
		aspects []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Create and publish a fixed-price listing",
		Long: "Creates an inventory item, an offer for it and publishes the offer.\n" +
			"With --draft the offer is left unpublished. Payment, return and\n" +
			"fulfillment policies come from the account's business policies.",
		Example: `  ebay-list list --title "Dell R740" --description "2x Xeon Gold" \
    --price 899.99 --condition USED_GOOD --category 11211 \
    --image https://example.com/1.jpg --aspect "Brand=Dell"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := parseAspects(aspects)
			if err != nil {
				return err
			}
			l.Aspects = parsed

			// Fail locally before touching credentials or the network.
			if err := l.Validate(); err != nil {
				return fmt.Errorf("invalid listing: %w", err)
			}

			e, err := loadEnv(cmd, app)
			if err != nil {
				return err
			}

			inv := ebay.NewInventoryClient(e.tokenProvider(app),
				ebay.WithAPIURL(e.apiURL),
				ebay.WithInventoryHTTPClient(app.HTTPClient()),
				ebay.WithInventoryLogger(app.Logger),
			)
			res, err := ebay.NewLister(inv, app.Logger).List(cmd.Context(), &l)
			if err != nil {
				return err
			}

			if err := app.Out.Result(res,
				cli.Field{Label: "SKU", Value: res.SKU},
				cli.Field{Label: "Offer ID", Value: res.OfferID},
				cli.Field{Label: "Listing ID", Value: res.ListingID},
				cli.Field{Label: "URL", Value: res.ListingURL},
			); err != nil {
				return err
			}
			if l.Draft {
				return app.Out.Line("Offer left unpublished; publish it from Seller Hub when ready.")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&l.Title, "title", "", "listing title (max 80 chars)")
	f.StringVar(&l.Description, "description", "", "listing description (HTML allowed)")
	f.Float64Var(&l.Price, "price", 0, "price in --currency")
	f.StringVar(&l.Condition, "condition", "", "item condition ("+strings.Join(ebay.Conditions, ", ")+")")
	f.StringArrayVar(&l.ImageURLs, "image", nil, "image URL (repeatable, first is the gallery image)")
	f.IntVar(&l.Quantity, "quantity", 1, "available quantity")
	f.StringVar(&l.CategoryID, "category", "", "eBay category ID")
	f.StringVar(&l.Marketplace, "marketplace", "US", "marketplace ("+strings.Join(ebay.MarketplaceCodes, ", ")+")")
	f.StringVar(&l.Currency, "currency", "USD", "price currency")
	f.StringVar(&l.SKU, "sku", "", "inventory SKU (generated when empty)")
	f.StringVar(&l.Brand, "brand", "", "item brand")
	f.StringVar(&l.Format, "format", ebay.FormatFixedPrice, "listing format ("+strings.Join(ebay.Formats, ", ")+")")
	f.StringArrayVar(&aspects, "aspect", nil, "item specific as name=value (repeatable)")
	f.BoolVar(&l.Draft, "draft", false, "create the offer without publishing it")

	for _, req := range []string{"title", "description", "price", "condition", "image"} {
		cobra.CheckErr(cmd.MarkFlagRequired(req))
	}

	return cmd
}

// parseAspects turns name=value pairs into eBay item specifics. Repeated
// names collect multiple values.
func parseAspects(pairs []string) (map[string][]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string][]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("invalid --aspect %q (want name=value)", p)
		}
		out[k] = append(out[k], v)
	}
	return out, nil
}
