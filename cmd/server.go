package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rlucioni/courtbot/internal/dispatch"
	"github.com/rlucioni/courtbot/internal/slack"
	"github.com/rlucioni/courtbot/internal/web"
)

const taskTimeout = 2 * time.Minute

func newServerCmd() *cobra.Command {
	var schedule bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve the /look and /book slash commands",
		Long: "Serve the slash-command endpoints. With AMQP_URL set, commands are queued for " +
			"`courtbot worker`; otherwise they run in this process.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			d, err := wire(ctx)
			if err != nil {
				return err
			}
			defer d.close()

			var dispatcher dispatch.Dispatcher
			if cfg.AMQPURL != "" {
				sealer, err := dispatch.NewSealer(cfg.CookieHashKey, cfg.CookieBlockKey, cfg.TaskMaxAge)
				if err != nil {
					return err
				}
				conn, ch, err := dispatch.Connect(cfg.AMQPURL, cfg.AMQPQueue)
				if err != nil {
					return err
				}
				defer conn.Close()
				dispatcher = dispatch.NewPublisher(ch, cfg.AMQPQueue, sealer)
				d.logger.Info("queueing commands", zap.String("queue", cfg.AMQPQueue))
			} else {
				inline := dispatch.NewInline(d.bot(), taskTimeout, d.logger.Named("dispatch"))
				defer func() {
					waitCtx, cancel := context.WithTimeout(context.Background(), taskTimeout)
					defer cancel()
					if err := inline.Wait(waitCtx); err != nil {
						d.logger.Warn("tasks still running at shutdown", zap.Error(err))
					}
				}()
				dispatcher = inline
			}

			if schedule {
				s, err := newDailyScheduler(d, newNotifier())
				if err != nil {
					return err
				}
				// runs before d.close so a booking in progress still has its stores
				defer runInBackground(ctx, s)()
			}

			ws := &web.Server{
				Verifier:        slack.Verifier{Token: cfg.VerificationToken, TeamID: cfg.TeamID},
				Dispatcher:      dispatcher,
				Embargo:         d.embargo,
				BookingChannels: cfg.BookingChannels,
				Logger:          d.logger.Named("web"),
			}
			return web.Start(ctx, cfg.ListenAddr, ws.Routes(), d.logger)
		},
	}

	cmd.Flags().BoolVar(&schedule, "schedule", false, "also run the daily scheduled booking at SCHEDULE_AT")
	return cmd
}
