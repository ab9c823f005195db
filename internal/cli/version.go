package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.eggybyte.com/jerseykit/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show jerseykit version information",
		Long: `Display version information for jerseykit.

This command shows:
  • Version, git commit hash, and build timestamp
  • Go runtime version`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersionInfo())
		},
	}
}
