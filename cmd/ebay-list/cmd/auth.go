package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/social-post/internal/cli"
	"github.com/donaldgifford/social-post/internal/ebay"
)

type authResult struct {
	TokenFile             string `json:"tokenFile"`
	TokenType             string `json:"tokenType,omitempty"`
	ExpiresIn             int    `json:"expiresIn"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn"`
}

func authCommand(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize with eBay and save the user token pair",
		Long: "Opens the eBay consent page in a browser and waits for the redirect on\n" +
			"the local callback address. The resulting access and refresh tokens\n" +
			"are saved to the token file with mode 0600.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd, app)
			if err != nil {
				return err
			}

			s := app.Settings.Ebay
			a := ebay.NewAuthorizer(ebay.AuthorizerConfig{
				ClientID:     e.creds.ClientID,
				ClientSecret: e.creds.ClientSecret,
				RuName:       e.creds.RuName,
				APIURL:       e.apiURL,
				AuthURL:      e.authURL,
				CallbackAddr: s.CallbackAddr,
				Timeout:      s.AuthTimeout,
			}, e.store,
				ebay.WithBrowserOpener(openBrowser),
				ebay.WithPrompt(func(u string) {
					fmt.Fprintf(app.Stderr, "Opening browser for eBay authorization. If it does not open, visit:\n\n  %s\n\n", u)
				}),
				ebay.WithAuthorizerHTTPClient(app.HTTPClient()),
				ebay.WithAuthorizerLogger(app.Logger),
			)

			rec, err := a.Authorize(cmd.Context())
			if err != nil {
				return err
			}

			res := authResult{
				TokenFile:             e.store.Path(),
				TokenType:             rec.TokenType,
				ExpiresIn:             rec.ExpiresIn,
				RefreshTokenExpiresIn: rec.RefreshTokenExpiresIn,
			}
			return app.Out.Result(res,
				cli.Field{Label: "Tokens saved to", Value: res.TokenFile},
				cli.Field{Label: "Access token expires in", Value: lifetime(rec.ExpiresIn)},
				cli.Field{Label: "Refresh token expires in", Value: lifetime(rec.RefreshTokenExpiresIn)},
			)
		},
	}
}
