package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print version info",
		PersistentPreRunE: noConfig,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "courtbot %s (commit=%s, built=%s)\n", Version, CommitSHA, BuildDate)
		},
	}
}
