// Package accounts supplies the booking-site accounts the bot books with,
// in the order they should be tried.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

var ErrNoAccounts = errors.New("no accounts configured")

type Source interface {
	Credentials(ctx context.Context) ([]reservation.Credentials, error)
}

// Static is a fixed list, usually read from configuration.
type Static []reservation.Credentials

// NewStatic pairs usernames with passwords by position.
func NewStatic(usernames, passwords []string) (Static, error) {
	if len(usernames) != len(passwords) {
		return nil, fmt.Errorf("%d usernames but %d passwords", len(usernames), len(passwords))
	}
	out := make(Static, 0, len(usernames))
	for i, u := range usernames {
		out = append(out, reservation.Credentials{Username: u, Password: passwords[i]})
	}
	return out, nil
}

func (s Static) Credentials(context.Context) ([]reservation.Credentials, error) {
	if len(s) == 0 {
		return nil, ErrNoAccounts
	}
	return append([]reservation.Credentials(nil), s...), nil
}
