package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

type Look struct {
	Provider reservation.Provider
	Now      func() time.Time
}

// Execute returns the bookable hours dayOffset days from today. For today,
// hours that have already started are left out.
func (u Look) Execute(ctx context.Context, dayOffset int) (reservation.Availability, error) {
	if u.Provider == nil {
		return nil, fmt.Errorf("provider is nil")
	}
	if dayOffset < 0 {
		return nil, fmt.Errorf("%w: day offset %d", reservation.ErrInvalidSlot, dayOffset)
	}
	now := clock(u.Now)
	raw, err := u.Provider.Availability(ctx, reservation.Day(now, dayOffset))
	if err != nil {
		return nil, err
	}
	return reservation.Aggregate(raw, now, dayOffset > 0), nil
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}
