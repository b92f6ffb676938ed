package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionCommand creates the "version" subcommand.
func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the blochctl version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
