// Package cmd implements the ebay-list CLI.
package cmd

import (
	"errors"
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/social-post/internal/cli"
	"github.com/donaldgifford/social-post/internal/config"
	"github.com/donaldgifford/social-post/internal/ebay"
)

const name = "ebay-list"

var (
	app = cli.New(name)

	// openBrowser launches the consent page.
	openBrowser = browser.OpenURL
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return newRootCmd(app)
}

// Execute runs the root command.
func Execute() {
	app.Execute(Root())
}

func newRootCmd(app *cli.App) *cobra.Command {
	root := &cobra.Command{
		Use:   name,
		Short: "List items on eBay",
		Long: "Authorize against eBay once, then create listings through the Sell\n" +
			"Inventory API (inventory item, offer, publish).\n" +
			"Credentials are read from EBAY_CLIENT_ID, EBAY_CLIENT_SECRET and\n" +
			"EBAY_RUNAME. Set EBAY_SANDBOX=1 to use the sandbox.",
	}
	app.Bind(root)
	app.Hint = func(err error) string { return hint(app, err) }

	root.PersistentFlags().String("token-file", "", "token cache file (default ~/.ebay_tokens.json)")

	root.AddCommand(authCommand(app))
	root.AddCommand(refreshCommand(app))
	root.AddCommand(listCommand(app))
	root.AddCommand(cli.VersionCommand(name))

	return root
}

func hint(app *cli.App, err error) string {
	if errors.Is(err, ebay.ErrAuthorizationTimeout) {
		return "The RuName's accept URL must redirect to http://" + app.Settings.Ebay.CallbackAddr + "/callback."
	}
	return ""
}

// env bundles what every subcommand derives from credentials and settings.
type env struct {
	creds   *config.EbayCredentials
	apiURL  string
	authURL string
	store   *ebay.FileTokenStore
}

func loadEnv(cmd *cobra.Command, app *cli.App) (*env, error) {
	creds, err := config.LoadEbayCredentials(app.Env)
	if err != nil {
		return nil, err
	}

	path := app.Settings.Ebay.TokenFile
	if f, _ := cmd.Flags().GetString("token-file"); f != "" {
		path = config.ExpandHome(f)
	}

	apiURL, authURL := app.Settings.Ebay.Endpoints(creds.Sandbox)
	if creds.Sandbox {
		app.Logger.Info("using eBay sandbox", "api", apiURL)
	}

	return &env{
		creds:   creds,
		apiURL:  apiURL,
		authURL: authURL,
		store:   ebay.NewFileTokenStore(path),
	}, nil
}

func (e *env) tokenProvider(app *cli.App) *ebay.UserTokenProvider {
	return ebay.NewUserTokenProvider(e.creds.ClientID, e.creds.ClientSecret, e.store,
		ebay.WithTokenURL(ebay.TokenURL(e.apiURL)),
		ebay.WithHTTPClient(app.HTTPClient()),
		ebay.WithLogger(app.Logger),
	)
}

// lifetime renders a token lifetime in seconds for humans.
func lifetime(seconds int) string {
	const day = 24 * 60 * 60
	switch {
	case seconds <= 0:
		return "unknown"
	case seconds >= day:
		return fmt.Sprintf("%d days", seconds/day)
	case seconds >= 3600:
		return fmt.Sprintf("%.1f hours", float64(seconds)/3600)
	default:
		return fmt.Sprintf("%d minutes", seconds/60)
	}
}
