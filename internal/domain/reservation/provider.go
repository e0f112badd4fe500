package reservation

import (
	"context"
	"time"
)

// Provider is the booking site as seen by the use cases.
type Provider interface {
	Name() string
	Availability(ctx context.Context, day time.Time) ([]CourtAvailability, error)
	Book(ctx context.Context, creds Credentials, req Request) error
}
