package reservation

import (
	"fmt"
	"time"
)

const (
	MinCourt = 1
	MaxCourt = 5

	// Court N is resource N+16 on the booking site.
	resourceOffset = 16

	slotMinutes = 60
)

type Credentials struct {
	Username string
	Password string
}

// Request is a booking request as it arrives from a command or the scheduler.
type Request struct {
	Court     int
	Hour      int // 0..23
	DayOffset int // 0 today, 1 tomorrow
}

// Slot identifies exactly one bookable hour on one court. Build it with NewSlot.
type Slot struct {
	Court int
	Date  time.Time // midnight in the venue's timezone
	Hour  int
}

func NewSlot(court int, date time.Time, hour int) (Slot, error) {
	if court < MinCourt || court > MaxCourt {
		return Slot{}, fmt.Errorf("%w: court %d not in %d..%d", ErrInvalidSlot, court, MinCourt, MaxCourt)
	}
	if hour < 0 || hour > 23 {
		return Slot{}, fmt.Errorf("%w: hour %d not in 0..23", ErrInvalidSlot, hour)
	}
	d := date.In(Venue)
	return Slot{
		Court: court,
		Date:  time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, Venue),
		Hour:  hour,
	}, nil
}

// SlotFor resolves a request against the current time.
func SlotFor(req Request, now time.Time) (Slot, error) {
	if req.DayOffset < 0 {
		return Slot{}, fmt.Errorf("%w: negative day offset %d", ErrInvalidSlot, req.DayOffset)
	}
	return NewSlot(req.Court, Day(now, req.DayOffset), req.Hour)
}

func (s Slot) ResourceID() int { return s.Court + resourceOffset }

func (s Slot) DurationMinutes() int { return slotMinutes }

func (s Slot) StartMinute() int { return s.Hour * 60 }

func (s Slot) String() string {
	return fmt.Sprintf("#%d at %s on %s", s.Court, HourLabel(s.Hour), FormatDate(s.Date))
}

// ResourceIDs lists the booking site's resource ids for every court, in court order.
func ResourceIDs() []int {
	out := make([]int, 0, MaxCourt-MinCourt+1)
	for c := MinCourt; c <= MaxCourt; c++ {
		out = append(out, c+resourceOffset)
	}
	return out
}

// CourtForResource maps a resource id back to its court number.
func CourtForResource(id int) (int, bool) {
	c := id - resourceOffset
	if c < MinCourt || c > MaxCourt {
		return 0, false
	}
	return c, true
}

// MinuteAvailability is one entry of the booking site's per-minute feed.
type MinuteAvailability struct {
	Minute    int
	Available bool
}

// CourtAvailability is the raw per-minute feed for one resource on one date.
type CourtAvailability struct {
	ID      int
	Minutes []MinuteAvailability
}
