// Package cmd implements the reddit-post CLI.
package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/social-post/internal/cli"
	"github.com/donaldgifford/social-post/internal/config"
	"github.com/donaldgifford/social-post/internal/reddit"
)

const name = "reddit-post"

var app = cli.New(name)

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
		Short: "Submit posts and comments to Reddit",
		Long: "Submit link or self posts, and comments, as a Reddit script app user.\n" +
			"Credentials are read from REDDIT_CLIENT_ID, REDDIT_CLIENT_SECRET,\n" +
			"REDDIT_USERNAME and REDDIT_PASSWORD.",
	}
	app.Bind(root)
	app.Hint = hint

	root.AddCommand(postCommand(app))
	root.AddCommand(commentCommand(app))
	root.AddCommand(cli.VersionCommand(name))

	return root
}

func hint(err error) string {
	if errors.Is(err, reddit.ErrAuthFailed) {
		return "Check the app is a \"script\" app and the account has no two-factor authentication."
	}
	return ""
}

func newClient(app *cli.App) (*reddit.Client, error) {
	creds, err := config.LoadRedditCredentials(app.Env)
	if err != nil {
		return nil, err
	}

	rs := app.Settings.Reddit
	hc := reddit.NewHTTPClient(app.HTTPClient(), rs.UserAgent)
	tokens := reddit.NewPasswordTokenSource(rs.TokenURL,
		creds.ClientID, creds.ClientSecret, creds.Username, creds.Password, hc)

	return reddit.NewClient(tokens, hc,
		reddit.WithAPIURL(rs.APIURL),
		reddit.WithLogger(app.Logger),
	), nil
}
