package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rlucioni/courtbot/internal/dispatch"
)

// bookExample is the command text shown in help.
const bookExample = "#2 at 7pm tomorrow"

func newBookCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "book <text>",
		Short:   "Book a court, e.g. `book \"" + bookExample + "\"`",
		Args:    cobra.MinimumNArgs(1),
		Example: "  courtbot book \"" + bookExample + "\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccounts(); err != nil {
				return err
			}
			d, err := wire(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			fmt.Fprintln(cmd.OutOrStdout(), d.bot().Respond(cmd.Context(), dispatch.CommandBook, strings.Join(args, " ")))
			return nil
		},
	}
}
