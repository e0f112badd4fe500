package reservation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bitmap(id int, open ...int) CourtAvailability {
	set := make(map[int]bool, len(open))
	for _, m := range open {
		set[m] = true
	}
	minutes := make([]MinuteAvailability, 0, 24*60)
	for m := 0; m < 24*60; m++ {
		minutes = append(minutes, MinuteAvailability{Minute: m, Available: set[m]})
	}
	return CourtAvailability{ID: id, Minutes: minutes}
}

func at(hour int) time.Time {
	return time.Date(2026, time.October, 17, hour, 30, 0, 0, Venue)
}

func TestAggregateScenarios(t *testing.T) {
	raw := []CourtAvailability{bitmap(17, 1200)}

	t.Run("today before the slot", func(t *testing.T) {
		got := Aggregate(raw, at(10), false)
		assert.Equal(t, Availability{1: {"8 PM"}}, got)
	})

	t.Run("today after the slot", func(t *testing.T) {
		got := Aggregate(raw, at(21), false)
		assert.Empty(t, got)
		_, ok := got[1]
		assert.False(t, ok, "court with no hours must be omitted, not empty")
	})

	t.Run("tomorrow ignores the clock", func(t *testing.T) {
		got := Aggregate(raw, at(21), true)
		assert.Equal(t, Availability{1: {"8 PM"}}, got)
	})
}

func TestAggregateSameDayFilter(t *testing.T) {
	var open []int
	for h := 0; h < 24; h++ {
		open = append(open, h*60)
	}
	raw := []CourtAvailability{bitmap(19, open...)}

	for current := 0; current < 24; current++ {
		got := Aggregate(raw, at(current), false)
		for _, label := range got[3] {
			h, err := ParseHourLabel(label)
			require.NoError(t, err)
			assert.Greater(t, h, current)
		}
		assert.Len(t, got[3], 23-current)

		future := Aggregate(raw, at(current), true)
		assert.Len(t, future[3], 24)
	}
}

func TestAggregateIgnoresOffHourMinutes(t *testing.T) {
	// 19:30 through 19:59 open, 20:00 closed: nothing bookable on the hour.
	var open []int
	for m := 19*60 + 30; m < 20*60; m++ {
		open = append(open, m)
	}
	got := Aggregate([]CourtAvailability{bitmap(18, open...)}, at(8), false)
	assert.Empty(t, got)
}

func TestAggregateIgnoresUnknownResources(t *testing.T) {
	got := Aggregate([]CourtAvailability{bitmap(16, 1200), bitmap(22, 1200), bitmap(21, 1200)}, at(8), false)
	assert.Equal(t, []int{5}, got.Courts())
}

func TestAggregateMembershipAndOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		var raw []CourtAvailability
		for id := 17; id <= 21; id++ {
			var open []int
			for m := 0; m < 24*60; m++ {
				if rng.Intn(40) == 0 {
					open = append(open, m)
				}
			}
			raw = append(raw, bitmap(id, open...))
		}
		now := at(rng.Intn(24))
		future := rng.Intn(2) == 0

		got := Aggregate(raw, now, future)
		assert.Equal(t, got, Aggregate(raw, now, future), "aggregation must be deterministic")

		for _, rec := range raw {
			court, _ := CourtForResource(rec.ID)
			want := false
			for _, m := range rec.Minutes {
				if m.Available && m.Minute%60 == 0 && (future || m.Minute/60 > now.Hour()) {
					want = true
				}
			}
			_, present := got[court]
			assert.Equal(t, want, present, "court %d", court)

			prev := -1
			for _, label := range got[court] {
				h, err := ParseHourLabel(label)
				require.NoError(t, err)
				assert.Greater(t, h, prev)
				prev = h
			}
		}
	}
}

func TestAvailabilityHelpers(t *testing.T) {
	a := Availability{4: {"7 PM", "8 PM"}, 2: {"9 PM"}}
	assert.Equal(t, []int{2, 4}, a.Courts())
	assert.True(t, a.Has(4, 20))
	assert.False(t, a.Has(4, 21))
	assert.Equal(t, "7 PM, 8 PM", a.Joined(4))
}
