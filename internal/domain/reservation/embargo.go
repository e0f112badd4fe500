package reservation

import (
	"fmt"
	"time"
)

// Embargo is a closure window, inclusive on both ends, in venue dates.
type Embargo struct {
	Start time.Time
	End   time.Time
}

// ParseEmbargo reads two YYYY-MM-DD dates. Two empty strings mean no embargo.
func ParseEmbargo(start, end string) (*Embargo, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	s, err := time.ParseInLocation("2006-01-02", start, Venue)
	if err != nil {
		return nil, fmt.Errorf("embargo start: %w", err)
	}
	e, err := time.ParseInLocation("2006-01-02", end, Venue)
	if err != nil {
		return nil, fmt.Errorf("embargo end: %w", err)
	}
	if e.Before(s) {
		return nil, fmt.Errorf("embargo end %s before start %s", end, start)
	}
	return &Embargo{Start: s, End: e}, nil
}

// Active reports whether now's venue date falls inside the window. A nil
// embargo is never active.
func (e *Embargo) Active(now time.Time) bool {
	if e == nil {
		return false
	}
	today := Day(now, 0)
	return !today.Before(e.Start) && !today.After(e.End)
}

func (e *Embargo) String() string {
	return fmt.Sprintf("%s through %s", e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}
