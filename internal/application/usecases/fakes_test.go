package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

var tuesdayMorning = time.Date(2026, time.October, 20, 9, 0, 0, 0, reservation.Venue)

func now() time.Time { return tuesdayMorning }

type bookCall struct {
	Username string
	Request  reservation.Request
}

type fakeProvider struct {
	mu       sync.Mutex
	raw      []reservation.CourtAvailability
	availErr error
	days     []time.Time
	// failures by username; absent means success
	fail  map[string]error
	calls []bookCall
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Availability(_ context.Context, day time.Time) ([]reservation.CourtAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days = append(f.days, day)
	return f.raw, f.availErr
}

func (f *fakeProvider) Book(_ context.Context, creds reservation.Credentials, req reservation.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := reservation.SlotFor(req, now()); err != nil {
		return err
	}
	f.calls = append(f.calls, bookCall{Username: creds.Username, Request: req})
	return f.fail[creds.Username]
}

type fakeCooldown struct {
	active map[string]bool
	marked []string
}

func (f *fakeCooldown) Active(_ context.Context, username string, _ int) (bool, error) {
	return f.active[username], nil
}

func (f *fakeCooldown) Mark(_ context.Context, username string, _ int) error {
	f.marked = append(f.marked, username)
	return nil
}

type fakeNotifier struct{ texts []string }

func (f *fakeNotifier) Notify(_ context.Context, text string) error {
	f.texts = append(f.texts, text)
	return nil
}

type staticAccounts []reservation.Credentials

func (s staticAccounts) Credentials(context.Context) ([]reservation.Credentials, error) {
	return s, nil
}

func accountsNamed(names ...string) staticAccounts {
	var out staticAccounts
	for _, n := range names {
		out = append(out, reservation.Credentials{Username: n, Password: "pw-" + n})
	}
	return out
}

// openAt marks the given courts free at the given 24-hour hours.
func openAt(slots map[int][]int) []reservation.CourtAvailability {
	var out []reservation.CourtAvailability
	for court := reservation.MinCourt; court <= reservation.MaxCourt; court++ {
		ca := reservation.CourtAvailability{ID: court + 16}
		for _, h := range slots[court] {
			ca.Minutes = append(ca.Minutes, reservation.MinuteAvailability{Minute: h * 60, Available: true})
		}
		out = append(out, ca)
	}
	return out
}
