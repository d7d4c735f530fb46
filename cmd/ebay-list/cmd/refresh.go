package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/social-post/internal/cli"
)

func refreshCommand(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the saved access token now",
		Long:  "Exchanges the saved refresh token for a new access token regardless of the current token's age.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd, app)
			if err != nil {
				return err
			}

			rec, err := e.tokenProvider(app).Refresh(cmd.Context())
			if err != nil {
				return err
			}

			res := authResult{
				TokenFile:             e.store.Path(),
				TokenType:             rec.TokenType,
				ExpiresIn:             rec.ExpiresInOrDefault(),
				RefreshTokenExpiresIn: rec.RefreshTokenExpiresIn,
			}
			return app.Out.Result(res,
				cli.Field{Label: "Tokens saved to", Value: res.TokenFile},
				cli.Field{Label: "Access token expires in", Value: lifetime(res.ExpiresIn)},
			)
		},
	}
}
