package reservation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // the venue timezone must resolve on hosts without a zoneinfo database
)

const VenueTimezone = "America/New_York"

// Venue is the fixed timezone all dates and "past hour" checks are evaluated in.
var Venue = mustLoadLocation(VenueTimezone)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("load %s: %v", name, err))
	}
	return loc
}

// HourLabel renders a 24-hour clock hour as "8 PM", "12 AM", ...
func HourLabel(hour int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d %s", h, period)
}

// ParseHourLabel is the inverse of HourLabel.
func ParseHourLabel(label string) (int, error) {
	parts := strings.Fields(label)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: hour label %q", ErrParse, label)
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: hour label %q", ErrParse, label)
	}
	return To24(n, parts[1])
}

// To24 converts a 12-hour clock hour (1..12) and an AM/PM period to 0..23.
func To24(twelveHour int, period string) (int, error) {
	if twelveHour < 1 || twelveHour > 12 {
		return 0, fmt.Errorf("%w: hour %d not in 1..12", ErrParse, twelveHour)
	}
	h := twelveHour % 12
	switch strings.ToUpper(period) {
	case "AM":
		return h, nil
	case "PM":
		return h + 12, nil
	default:
		return 0, fmt.Errorf("%w: period %q", ErrParse, period)
	}
}

// FormatDate renders the date the way the booking site expects it (MM/DD/YYYY).
func FormatDate(t time.Time) string {
	return t.In(Venue).Format("01/02/2006")
}

// Day returns midnight, venue time, offset days from now.
func Day(now time.Time, offset int) time.Time {
	d := now.In(Venue)
	return time.Date(d.Year(), d.Month(), d.Day()+offset, 0, 0, 0, 0, Venue)
}
