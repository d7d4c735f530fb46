package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/social-post/internal/cli"
)

func commentCommand(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <thing_id> <text>",
		Short: "Comment on a post or reply to a comment",
		Long:  "Comment on a post (t3_xxx) or reply to a comment (t1_xxx). The raw API response is printed.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return err
			}

			raw, err := client.Comment(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return app.Out.Raw(raw)
		},
	}
}
