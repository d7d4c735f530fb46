// Package cmd implements the ig-post CLI.
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/social-post/internal/cli"
	"github.com/donaldgifford/social-post/internal/config"
	"github.com/donaldgifford/social-post/internal/graph"
	"github.com/donaldgifford/social-post/internal/instagram"
)

const name = "ig-post"

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
		Short: "Publish images and reels to Instagram",
		Long: "Publish to an Instagram Business or Creator account through the Graph API.\n" +
			"Media must be reachable at a public URL. Credentials are read from\n" +
			"IG_USER_ID and IG_ACCESS_TOKEN.",
	}
	app.Bind(root)
	app.Hint = hint

	root.AddCommand(imageCommand(app))
	root.AddCommand(reelCommand(app))
	root.AddCommand(cli.VersionCommand(name))

	return root
}

func hint(err error) string {
	var pe *instagram.PollExhaustedError
	if errors.As(err, &pe) {
		return fmt.Sprintf("The container was not published. Processing can take longer than the budget; "+
			"raise instagram.%s.max_attempts in the settings file.", pe.Kind)
	}
	return ""
}

func newPublisher(app *cli.App) (*instagram.Publisher, error) {
	creds, err := config.LoadInstagramCredentials(app.Env)
	if err != nil {
		return nil, err
	}

	g := graph.NewClient(app.Settings.Graph.URL(), creds.AccessToken, "instagram",
		graph.WithHTTPClient(app.HTTPClient()),
		graph.WithLogger(app.Logger),
	)

	ig := app.Settings.Instagram
	return instagram.NewPublisher(g, creds.UserID,
		instagram.WithPollPolicies(
			instagram.PollPolicy{Interval: ig.Image.Interval, MaxAttempts: ig.Image.MaxAttempts},
			instagram.PollPolicy{Interval: ig.Reel.Interval, MaxAttempts: ig.Reel.MaxAttempts},
		),
		instagram.WithLogger(app.Logger),
	), nil
}

func printResult(app *cli.App, res *instagram.PublishResult) error {
	return app.Out.Result(res,
		cli.Field{Label: "Container ID", Value: res.ContainerID},
		cli.Field{Label: "Media ID", Value: res.MediaID},
	)
}
