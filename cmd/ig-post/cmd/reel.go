package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/social-post/internal/cli"
)

func reelCommand(app *cli.App) *cobra.Command {
	var caption string

	cmd := &cobra.Command{
		Use:   "reel <video_url>",
		Short: "Publish a reel",
		Long:  "Publish a publicly accessible video as a reel. Processing is polled for up to the reel budget before publishing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPublisher(app)
			if err != nil {
				return err
			}
			res, err := p.PublishReel(cmd.Context(), args[0], caption)
			if err != nil {
				return err
			}
			return printResult(app, res)
		},
	}
	cmd.Flags().StringVar(&caption, "caption", "", "reel caption")

	return cmd
}
