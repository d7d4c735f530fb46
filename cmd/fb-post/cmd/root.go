// Package cmd implements the fb-post CLI.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/social-post/internal/cli"
	"github.com/donaldgifford/social-post/internal/config"
	"github.com/donaldgifford/social-post/internal/facebook"
	"github.com/donaldgifford/social-post/internal/graph"
)

const name = "fb-post"

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
	var link string

	root := &cobra.Command{
		Use:   name + " <message>",
		Short: "Post to a Facebook Page",
		Long: "Publish a message, optionally with a link, to a Facebook Page feed.\n" +
			"Credentials are read from FB_PAGE_ID and FB_ACCESS_TOKEN (a page token).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPost(cmd.Context(), app, args[0], link)
		},
	}
	app.Bind(root)

	root.Flags().StringVar(&link, "link", "", "link to attach")
	cli.TextRoot(root, name)

	return root
}

func runPost(ctx context.Context, app *cli.App, message, link string) error {
	creds, err := config.LoadFacebookCredentials(app.Env)
	if err != nil {
		return err
	}

	g := graph.NewClient(app.Settings.Graph.URL(), creds.AccessToken, "facebook",
		graph.WithHTTPClient(app.HTTPClient()),
		graph.WithLogger(app.Logger),
	)

	post, err := facebook.NewClient(g, creds.PageID, app.Logger).PostToPage(ctx, message, link)
	if err != nil {
		return err
	}

	return app.Out.Result(post,
		cli.Field{Label: "ID", Value: post.ID},
		cli.Field{Label: "URL", Value: post.URL},
	)
}
