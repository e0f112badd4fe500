package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rlucioni/courtbot/internal/dispatch"
)

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Execute queued slash commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.AMQPURL == "" {
				return fmt.Errorf("worker needs AMQP_URL")
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			d, err := wire(ctx)
			if err != nil {
				return err
			}
			defer d.close()

			sealer, err := dispatch.NewSealer(cfg.CookieHashKey, cfg.CookieBlockKey, cfg.TaskMaxAge)
			if err != nil {
				return err
			}
			conn, ch, err := dispatch.Connect(cfg.AMQPURL, cfg.AMQPQueue)
			if err != nil {
				return err
			}
			defer conn.Close()

			msgs, err := dispatch.Consume(ch, cfg.AMQPQueue)
			if err != nil {
				return err
			}
			d.logger.Info("worker listening", zap.String("queue", cfg.AMQPQueue))

			w := dispatch.NewWorker(sealer, d.bot(), taskTimeout, d.logger.Named("worker"))
			if err := w.Run(ctx, msgs); err != nil && !errors.Is(err, ctx.Err()) {
				return err
			}
			d.logger.Info("worker stopped")
			return nil
		},
	}
}
