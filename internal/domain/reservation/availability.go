package reservation

import (
	"sort"
	"strings"
	"time"
)

// Availability maps court number to its bookable hours as labels, ascending.
// Courts without a bookable hour are absent.
type Availability map[int][]string

// Courts returns the court numbers present, ascending.
func (a Availability) Courts() []int {
	out := make([]int, 0, len(a))
	for c := range a {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}

// Has reports whether the court is free at the given hour.
func (a Availability) Has(court, hour int) bool {
	label := HourLabel(hour)
	for _, l := range a[court] {
		if l == label {
			return true
		}
	}
	return false
}

// Joined renders a court's hours as "7 PM, 8 PM".
func (a Availability) Joined(court int) string {
	return strings.Join(a[court], ", ")
}

// Aggregate reduces the per-minute feed to bookable hours. Courts are booked on
// the hour only, so only minute offsets 0, 60, ..., 1380 count. Unless future
// is set, hours up to and including the current venue hour are dropped.
func Aggregate(raw []CourtAvailability, now time.Time, future bool) Availability {
	current := now.In(Venue).Hour()
	open := map[int]*[24]bool{}

	for _, rec := range raw {
		court, ok := CourtForResource(rec.ID)
		if !ok {
			continue
		}
		hours, ok := open[court]
		if !ok {
			hours = new([24]bool)
			open[court] = hours
		}
		for _, m := range rec.Minutes {
			if !m.Available || m.Minute%60 != 0 || m.Minute < 0 || m.Minute >= 24*60 {
				continue
			}
			hours[m.Minute/60] = true
		}
	}

	out := Availability{}
	for court, hours := range open {
		var labels []string
		for hour, free := range hours {
			if !free || (!future && hour <= current) {
				continue
			}
			labels = append(labels, HourLabel(hour))
		}
		if len(labels) > 0 {
			out[court] = labels
		}
	}
	return out
}
