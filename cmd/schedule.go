package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rlucioni/courtbot/internal/application/usecases"
	"github.com/rlucioni/courtbot/internal/domain/reservation"
	"github.com/rlucioni/courtbot/internal/scheduler"
	"github.com/rlucioni/courtbot/internal/slack"
)

func newScheduleCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Book tomorrow evening's courts every day at SCHEDULE_AT",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccounts(); err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			d, err := wire(ctx)
			if err != nil {
				return err
			}
			defer d.close()

			n := newNotifier()
			if once {
				booked, err := d.scheduledBook(n).Execute(ctx)
				for _, r := range booked {
					fmt.Fprintf(cmd.OutOrStdout(), "booked court %d at %s\n", r.Court, reservation.HourLabel(r.Hour))
				}
				return err
			}

			s, err := newDailyScheduler(d, n)
			if err != nil {
				return err
			}
			return s.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "run the booking now and exit")
	return cmd
}

func newDailyScheduler(d *deps, n usecases.Notifier) (*scheduler.Scheduler, error) {
	at, err := scheduler.ParseDailyTime(cfg.ScheduleAt)
	if err != nil {
		return nil, err
	}
	job := d.scheduledBook(n)
	d.logger.Info("daily booking scheduled", zap.Stringer("at", at), zap.Duration("poll", cfg.PollInterval))
	return &scheduler.Scheduler{
		At:       at,
		Interval: cfg.PollInterval,
		Job: func(ctx context.Context) error {
			_, err := job.Execute(ctx)
			return err
		},
		Logger: d.logger.Named("scheduler"),
	}, nil
}

// runInBackground starts s on its own goroutine. The returned stop cancels it
// and blocks until any run in progress has returned.
func runInBackground(ctx context.Context, s *scheduler.Scheduler) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

// newNotifier posts to the notify channel when a bot token is configured and
// prints otherwise.
func newNotifier() usecases.Notifier {
	if cfg.BotToken != "" && cfg.NotifyChannel != "" {
		return slack.NewChannelNotifier(cfg.BotToken, cfg.NotifyChannel, "")
	}
	return writerNotifier{w: os.Stdout}
}

type writerNotifier struct{ w io.Writer }

func (n writerNotifier) Notify(_ context.Context, text string) error {
	_, err := fmt.Fprintln(n.w, text)
	return err
}
