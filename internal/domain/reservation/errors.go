package reservation

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSlot = errors.New("invalid slot")
	ErrTransport   = errors.New("transport failure")
	ErrScrape      = errors.New("expected field missing from page")
	ErrParse       = errors.New("unparseable input")

	// ErrUnconfirmed means the confirmation page never showed the thank-you
	// marker. Wrong credentials and a taken slot both end up here; the site
	// does not tell them apart.
	ErrUnconfirmed = errors.New("reservation not confirmed")

	ErrAccountsExhausted = errors.New("credentials exhausted, unable to book")
)

type Stage string

const (
	StageLogin        Stage = "login"
	StageStaging      Stage = "stage"
	StageConfirmation Stage = "confirm"
)

// StageError is the failure of one booking stage. The remaining stages never ran.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }

func (e *StageError) Unwrap() error { return e.Err }
