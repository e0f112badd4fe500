package usecases

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rlucioni/courtbot/internal/accounts"
	"github.com/rlucioni/courtbot/internal/cooldown"
	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

// Book tries each account in order until one of them confirms the slot.
// Every account gets exactly one orchestrator run.
type Book struct {
	Provider reservation.Provider
	Accounts accounts.Source
	Cooldown cooldown.Cache
	Logger   *zap.Logger
}

// Execute returns the username the slot was booked under.
func (u Book) Execute(ctx context.Context, req reservation.Request) (string, error) {
	if u.Provider == nil || u.Accounts == nil {
		return "", fmt.Errorf("book: provider and accounts are required")
	}
	log := logger(u.Logger).With(zap.Int("court", req.Court), zap.Int("hour", req.Hour), zap.Int("day_offset", req.DayOffset))
	cd := u.Cooldown
	if cd == nil {
		cd = cooldown.Nop{}
	}

	creds, err := u.Accounts.Credentials(ctx)
	if err != nil {
		return "", err
	}

	var lastErr error
	tried := 0
	for _, c := range creds {
		active, err := cd.Active(ctx, c.Username, req.DayOffset)
		if err != nil {
			log.Warn("cooldown lookup failed, trying account anyway", zap.String("username", c.Username), zap.Error(err))
		}
		if active {
			log.Info("account cooling down, skipping", zap.String("username", c.Username))
			continue
		}

		tried++
		err = u.Provider.Book(ctx, c, req)
		if err == nil {
			if err := cd.Mark(ctx, c.Username, req.DayOffset); err != nil {
				log.Warn("cooldown mark failed", zap.String("username", c.Username), zap.Error(err))
			}
			log.Info("booked", zap.String("username", c.Username))
			return c.Username, nil
		}
		if errors.Is(err, reservation.ErrInvalidSlot) {
			return "", err
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Warn("attempt failed", zap.String("username", c.Username), zap.Error(err))
		lastErr = err
	}

	if lastErr != nil {
		return "", fmt.Errorf("%w: %d of %d accounts tried, last: %v", reservation.ErrAccountsExhausted, tried, len(creds), lastErr)
	}
	return "", fmt.Errorf("%w: all %d accounts cooling down", reservation.ErrAccountsExhausted, len(creds))
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
