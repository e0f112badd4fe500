package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot(t *testing.T) {
	date := time.Date(2026, time.October, 17, 15, 4, 5, 0, Venue)

	s, err := NewSlot(4, date, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, s.ResourceID())
	assert.Equal(t, 1200, s.StartMinute())
	assert.Equal(t, 60, s.DurationMinutes())
	assert.Equal(t, 0, s.Date.Hour())
	assert.Equal(t, "#4 at 8 PM on 10/17/2026", s.String())

	for _, tc := range []struct{ court, hour int }{{0, 8}, {6, 8}, {1, -1}, {1, 24}} {
		_, err := NewSlot(tc.court, date, tc.hour)
		assert.ErrorIs(t, err, ErrInvalidSlot)
	}
}

func TestSlotFor(t *testing.T) {
	now := time.Date(2026, time.October, 17, 22, 0, 0, 0, Venue)

	s, err := SlotFor(Request{Court: 1, Hour: 19, DayOffset: 1}, now)
	require.NoError(t, err)
	assert.Equal(t, 18, s.Date.Day())

	_, err = SlotFor(Request{Court: 1, Hour: 19, DayOffset: -1}, now)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestResourceMapping(t *testing.T) {
	assert.Equal(t, []int{17, 18, 19, 20, 21}, ResourceIDs())
	c, ok := CourtForResource(21)
	assert.True(t, ok)
	assert.Equal(t, 5, c)
	_, ok = CourtForResource(22)
	assert.False(t, ok)
}

func TestStageErrorUnwraps(t *testing.T) {
	err := error(&StageError{Stage: StageConfirmation, Err: ErrScrape})
	assert.ErrorIs(t, err, ErrScrape)
	assert.Equal(t, "confirm: expected field missing from page", err.Error())
}
