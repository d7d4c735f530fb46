// Package cmd implements the tweet CLI.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/social-post/internal/cli"
	"github.com/donaldgifford/social-post/internal/config"
	"github.com/donaldgifford/social-post/internal/twitter"
)

const name = "tweet"

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
	var replyTo string

	root := &cobra.Command{
		Use:   name + " <text>",
		Short: "Post a tweet",
		Long: "Post a tweet through the X API v2 using OAuth 1.0a user context.\n" +
			"Credentials are read from TWITTER_API_KEY, TWITTER_API_SECRET,\n" +
			"TWITTER_ACCESS_TOKEN and TWITTER_ACCESS_TOKEN_SECRET.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTweet(cmd.Context(), app, args[0], replyTo)
		},
	}
	app.Bind(root)

	root.Flags().StringVar(&replyTo, "reply-to", "", "tweet ID to reply to")
	cli.TextRoot(root, name)

	return root
}

func runTweet(ctx context.Context, app *cli.App, text, replyTo string) error {
	// Length first, so an over-long draft fails even without credentials.
	if err := twitter.ValidateText(text); err != nil {
		return err
	}

	creds, err := config.LoadTwitterCredentials(app.Env)
	if err != nil {
		return err
	}

	client := twitter.NewClient(twitter.Credentials{
		APIKey:            creds.APIKey,
		APISecret:         creds.APISecret,
		AccessToken:       creds.AccessToken,
		AccessTokenSecret: creds.AccessTokenSecret,
	},
		twitter.WithAPIURL(app.Settings.Twitter.APIURL),
		twitter.WithHTTPClient(app.HTTPClient()),
		twitter.WithLogger(app.Logger),
	)

	tw, err := client.Post(ctx, text, replyTo)
	if err != nil {
		return err
	}

	return app.Out.Result(tw,
		cli.Field{Label: "ID", Value: tw.ID},
		cli.Field{Label: "Text", Value: cli.Truncate(tw.Text, 60)},
		cli.Field{Label: "URL", Value: tw.URL},
	)
}
