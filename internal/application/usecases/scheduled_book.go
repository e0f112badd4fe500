package usecases

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rlucioni/courtbot/internal/accounts"
	"github.com/rlucioni/courtbot/internal/domain/reservation"
	"github.com/rlucioni/courtbot/internal/messages"
)

var DefaultEveningHours = []int{19, 20, 21}

const DefaultCourtsPerHour = 2

// Notifier posts progress of a scheduled run somewhere people will see it.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// ScheduledBook books tomorrow evening's courts for the group. Hours are
// consecutive; it books at most one court per account, gives up on the last
// hour when the first is already covered and stops when the middle hour has
// nothing, so the group never ends up with a gap.
type ScheduledBook struct {
	Look     Look
	Book     Book
	Accounts accounts.Source
	Notifier Notifier
	Embargo  *reservation.Embargo
	Hours    []int
	PerHour  int
	Now      func() time.Time
	Logger   *zap.Logger
}

// Execute runs once and returns what it booked. A booking failure is reported
// to the channel and ends the run.
func (u ScheduledBook) Execute(ctx context.Context) ([]reservation.Request, error) {
	log := logger(u.Logger)
	if u.Embargo.Active(clock(u.Now)) {
		u.notify(ctx, messages.ScheduleSkipped(u.Embargo))
		return nil, nil
	}
	log.Info("running scheduled booking")

	booked, err := u.run(ctx, log)
	if err != nil {
		log.Error("scheduled booking failed", zap.Error(err))
		u.notify(ctx, messages.Failure)
		return booked, err
	}
	return booked, nil
}

func (u ScheduledBook) run(ctx context.Context, log *zap.Logger) ([]reservation.Request, error) {
	hours := u.Hours
	if len(hours) == 0 {
		hours = DefaultEveningHours
	}
	perHour := u.PerHour
	if perHour <= 0 {
		perHour = DefaultCourtsPerHour
	}
	if u.Accounts == nil {
		return nil, fmt.Errorf("scheduled booking: accounts are required")
	}

	u.notify(ctx, messages.Looking)
	avail, err := u.Look.Execute(ctx, 1)
	if err != nil {
		return nil, err
	}
	creds, err := u.Accounts.Credentials(ctx)
	if err != nil {
		return nil, err
	}
	limit := len(creds)

	var booked []reservation.Request
	perHourBooked := map[int]int{}
	plan := reservation.PlanEvening(avail, hours, perHour)
	for i, hp := range plan {
		if i == len(plan)-1 && i >= 2 && perHourBooked[plan[0].Hour] > 0 {
			log.Info("last hour reached with the first hour booked, stopping", zap.Int("hour", hp.Hour))
			break
		}
		if len(hp.Courts) == 0 {
			u.notify(ctx, messages.NoCourtsAt(hp.Hour))
			if i == 1 {
				log.Info("nothing free in the middle hour, stopping", zap.Int("hour", hp.Hour))
				break
			}
			continue
		}
		for _, court := range hp.Courts {
			if len(booked) >= limit {
				break
			}
			req := reservation.Request{Court: court, Hour: hp.Hour, DayOffset: 1}
			username, err := u.Book.Execute(ctx, req)
			if err != nil {
				return booked, err
			}
			u.notify(ctx, messages.Booked(req, username))
			booked = append(booked, req)
			perHourBooked[hp.Hour]++
		}
	}
	return booked, nil
}

func (u ScheduledBook) notify(ctx context.Context, text string) {
	if u.Notifier == nil {
		return
	}
	if err := u.Notifier.Notify(ctx, text); err != nil {
		logger(u.Logger).Warn("notify failed", zap.Error(err))
	}
}
