package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// VersionCommand prints "<name> <Version>".
func VersionCommand(name string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// Skip settings and .env loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), name+" "+Version)
			return err
		},
	}
}

// TextRoot prepares a root whose only positional argument is free text.
// Version moves to a --version flag and the implicit completion command is
// disabled, so any word, including "version" or "completion", is posted.
func TextRoot(root *cobra.Command, name string) {
	root.Version = Version
	root.SetVersionTemplate(name + " {{.Version}}\n")
	root.CompletionOptions.DisableDefaultCmd = true
}
