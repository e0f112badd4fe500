package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rlucioni/courtbot/internal/dispatch"
)

func newLookCmd() *cobra.Command {
	var tomorrow bool

	cmd := &cobra.Command{
		Use:   "look",
		Short: "Print open courts for today or tomorrow",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := wire(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			text := strings.Join(args, " ")
			if tomorrow {
				text = "tomorrow"
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.bot().Respond(cmd.Context(), dispatch.CommandLook, text))
			return nil
		},
	}

	cmd.Flags().BoolVar(&tomorrow, "tomorrow", false, "look at tomorrow instead of today")
	return cmd
}
