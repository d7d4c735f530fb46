package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/social-post/internal/cli"
)

func imageCommand(app *cli.App) *cobra.Command {
	var caption string

	cmd := &cobra.Command{
		Use:   "image <image_url>",
		Short: "Publish an image",
		Long:  "Publish a publicly accessible JPEG as a feed post.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPublisher(app)
			if err != nil {
				return err
			}
			res, err := p.PublishImage(cmd.Context(), args[0], caption)
			if err != nil {
				return err
			}
			return printResult(app, res)
		},
	}
	cmd.Flags().StringVar(&caption, "caption", "", "post caption")

	return cmd
}
