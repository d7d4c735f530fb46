package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/social-post/internal/cli"
	"github.com/donaldgifford/social-post/internal/reddit"
)

func postCommand(app *cli.App) *cobra.Command {
	var text, link string

	cmd := &cobra.Command{
		Use:   "post <subreddit> <title>",
		Short: "Submit a new post",
		Long:  "Submit a self post (--text) or a link post (--url). The subreddit is given without the r/ prefix.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return err
			}

			res, err := client.Submit(cmd.Context(), reddit.SubmitRequest{
				Subreddit: args[0],
				Title:     args[1],
				Text:      text,
				URL:       link,
			})
			if err != nil {
				return err
			}

			return app.Out.Result(res,
				cli.Field{Label: "Name", Value: res.Name},
				cli.Field{Label: "URL", Value: res.URL},
			)
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "post body (self post)")
	cmd.Flags().StringVar(&link, "url", "", "link to submit (link post)")
	cmd.MarkFlagsMutuallyExclusive("text", "url")

	return cmd
}
