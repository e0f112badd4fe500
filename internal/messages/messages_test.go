package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

func TestAvailability(t *testing.T) {
	avail := reservation.Availability{
		3: {"7 PM", "8 PM"},
		1: {"9 AM"},
	}
	assert.Equal(t,
		"Here's how the courts look tomorrow.\n\n*#1* is available at 9 AM.\n\n*#3* is available at 7 PM, 8 PM.",
		Availability(avail, 1))
	assert.Equal(t, "There are no courts available.", Availability(reservation.Availability{}, 0))
	assert.Equal(t, "There are no courts available tomorrow.", Availability(nil, 1))
}

func TestBooked(t *testing.T) {
	assert.Equal(t, "Booked #4 at 8 PM tomorrow (as zcenter)",
		Booked(reservation.Request{Court: 4, Hour: 20, DayOffset: 1}, "zcenter"))
	assert.Equal(t, "Booked #1 at 12 AM (as a)",
		Booked(reservation.Request{Court: 1, Hour: 0}, "a"))
}

func TestEmbargoTexts(t *testing.T) {
	e, err := reservation.ParseEmbargo("2026-12-20", "2027-01-02")
	require.NoError(t, err)

	assert.Equal(t, "Courts are closed 2026-12-20 through 2027-01-02.", Closed(e))
	assert.Equal(t, "Unable to book. Courts are closed 2026-12-20 through 2027-01-02.", BookClosed(e))
	assert.Equal(t, "Skipping scheduled booking. Courts are closed 2026-12-20 through 2027-01-02.", ScheduleSkipped(e))
}

func TestSmallTexts(t *testing.T) {
	assert.Equal(t, "No courts available at 7 PM tomorrow.", NoCourtsAt(19))
	assert.Equal(t, "I can only book courts in <#C024BE91L|general>", WrongChannel("C024BE91L"))
}
