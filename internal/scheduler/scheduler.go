package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

// Grace is how late a daily run may still start. A process that comes up
// more than Grace after the daily time waits for the next day.
const Grace = time.Hour

// DailyTime is a wall-clock time in the venue's timezone.
type DailyTime struct {
	Hour, Minute int
}

func ParseDailyTime(s string) (DailyTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return DailyTime{}, fmt.Errorf("daily time %q: %w", s, err)
	}
	return DailyTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (d DailyTime) String() string { return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute) }

// On returns d on the venue date of day.
func (d DailyTime) On(day time.Time) time.Time {
	v := day.In(reservation.Venue)
	return time.Date(v.Year(), v.Month(), v.Day(), d.Hour, d.Minute, 0, 0, reservation.Venue)
}

// Due reports whether the run for now's venue date should start: the daily
// time has passed by less than Grace and no run happened that date yet.
func Due(now time.Time, at DailyTime, lastRun time.Time) bool {
	start := at.On(now)
	if now.Before(start) || !now.Before(start.Add(Grace)) {
		return false
	}
	if lastRun.IsZero() {
		return true
	}
	return !reservation.Day(lastRun, 0).Equal(reservation.Day(now, 0))
}

// Scheduler polls on a ticker and fires Job once per venue day at At.
type Scheduler struct {
	At       DailyTime
	Interval time.Duration
	Job      func(ctx context.Context) error
	Now      func() time.Time
	Logger   *zap.Logger

	mu      sync.Mutex
	lastRun time.Time
	wg      sync.WaitGroup
}

func (s *Scheduler) Run(ctx context.Context) error {
	t := time.NewTicker(s.Interval)
	defer t.Stop()

	// kick immediately
	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return ctx.Err()
		case <-t.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	if !Due(now, s.At, s.lastRun) {
		s.mu.Unlock()
		return
	}
	s.lastRun = now
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Logger.Info("starting daily run", zap.Stringer("at", s.At), zap.String("date", reservation.FormatDate(now)))
		if err := s.Job(ctx); err != nil {
			s.Logger.Error("daily run failed", zap.Error(err))
		}
	}()
}

func (s *Scheduler) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
