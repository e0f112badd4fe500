package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rlucioni/courtbot/internal/config"
	"github.com/rlucioni/courtbot/internal/observability"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

// cfg is loaded once per invocation, before any subcommand runs.
var cfg config.Config

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "courtbot",
		Short:         "Slack bot that checks and books MIT Recreation squash courts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.FromEnv()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			cfg = c
			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("configuration loaded", zap.String("command", cmd.Name()), zap.String("version", Version))
			return nil
		},
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newKeysCmd())
	root.AddCommand(newServerCmd())
	root.AddCommand(newWorkerCmd())
	root.AddCommand(newLookCmd())
	root.AddCommand(newBookCmd())
	root.AddCommand(newScheduleCmd())
	root.AddCommand(newAccountCmd())

	return root
}

func Execute() {
	defer observability.Sync()
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		observability.Sync()
		os.Exit(1)
	}
}

// noConfig replaces the root's config loading for commands that work
// without any environment.
func noConfig(*cobra.Command, []string) error { return nil }
