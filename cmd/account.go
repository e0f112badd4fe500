package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rlucioni/courtbot/internal/db"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the booking accounts stored in the database",
	}
	cmd.AddCommand(newAccountAddCmd(), newAccountListCmd(), newAccountRemoveCmd())
	return cmd
}

func newAccountAddCmd() *cobra.Command {
	var username, password string
	var position int

	c := &cobra.Command{
		Use:   "add",
		Short: "Add or update an account; lower positions are tried first",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openAccountRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			if err := repo.Add(cmd.Context(), username, password, position); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved account %q\n", username)
			return nil
		},
	}

	c.Flags().StringVar(&username, "username", "", "MIT Recreation username")
	c.Flags().StringVar(&password, "password", "", "MIT Recreation password")
	c.Flags().IntVar(&position, "position", 0, "order in which accounts are tried")
	_ = c.MarkFlagRequired("username")
	_ = c.MarkFlagRequired("password")
	return c
}

func newAccountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored accounts in booking order",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openAccountRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			list, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "POSITION\tUSERNAME\tADDED")
			for _, a := range list {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", a.Position, a.Username, a.CreatedAt.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}
}

func newAccountRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <username>",
		Short: "Remove a stored account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openAccountRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			if err := repo.Remove(cmd.Context(), args[0]); err != nil {
				if db.IsNotFound(err) {
					return fmt.Errorf("no account %q", args[0])
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed account %q\n", args[0])
			return nil
		},
	}
}
