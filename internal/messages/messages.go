// Package messages renders every text courtbot shows in chat.
package messages

import (
	"fmt"
	"strings"

	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

const (
	Looking = "Looking..."
	Booking = "Booking..."
	Failure = "Something went wrong. Sorry!"
	Usage   = "Please provide a court number and an hour (e.g., `/book #4 @ 8 pm`)."

	LookHelp = "Use this command to check squash court availability. " +
		"Call it without arguments (i.e., `/look`) to check today. " +
		"Call it with `tomorrow` as an argument (e.g., `/look tomorrow`) to check tomorrow."

	BookHelp = "Use this command to reserve a Z-Center squash court. " +
		"Call it with a court number and an hour to make a reservation (e.g., `/book #4 @ 8 pm`). " +
		"Include `tomorrow` as an argument (e.g., `/book #4 @ 8 pm tomorrow`) to book a court for tomorrow."
)

func when(dayOffset int) string {
	switch {
	case dayOffset == 1:
		return " tomorrow"
	case dayOffset > 1:
		return fmt.Sprintf(" in %d days", dayOffset)
	}
	return ""
}

// Availability renders a look result, one paragraph per court.
func Availability(avail reservation.Availability, dayOffset int) string {
	courts := avail.Courts()
	if len(courts) == 0 {
		return fmt.Sprintf("There are no courts available%s.", when(dayOffset))
	}
	lines := []string{fmt.Sprintf("Here's how the courts look%s.", when(dayOffset))}
	for _, c := range courts {
		lines = append(lines, fmt.Sprintf("*#%d* is available at %s.", c, avail.Joined(c)))
	}
	return strings.Join(lines, "\n\n")
}

func Booked(req reservation.Request, username string) string {
	return fmt.Sprintf("Booked #%d at %s%s (as %s)", req.Court, reservation.HourLabel(req.Hour), when(req.DayOffset), username)
}

func NoCourtsAt(hour int) string {
	return fmt.Sprintf("No courts available at %s tomorrow.", reservation.HourLabel(hour))
}

func Closed(e *reservation.Embargo) string {
	return fmt.Sprintf("Courts are closed %s.", e)
}

func BookClosed(e *reservation.Embargo) string {
	return "Unable to book. " + Closed(e)
}

func ScheduleSkipped(e *reservation.Embargo) string {
	return "Skipping scheduled booking. " + Closed(e)
}

func WrongChannel(channel string) string {
	return fmt.Sprintf("I can only book courts in <#%s|general>", channel)
}
