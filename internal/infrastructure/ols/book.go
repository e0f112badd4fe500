package ols

import (
	"context"

	"go.uber.org/zap"

	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

// Book logs in, stages and confirms one slot on a fresh session. The first
// failing stage ends the attempt and comes back as a *reservation.StageError.
// A request that does not describe a valid slot fails before any request is sent.
func (c *Client) Book(ctx context.Context, creds reservation.Credentials, req reservation.Request) error {
	slot, err := reservation.SlotFor(req, c.now())
	if err != nil {
		return err
	}
	log := c.logger.With(zap.String("username", creds.Username), zap.Stringer("slot", slot))

	sess, err := NewSession()
	if err != nil {
		return err
	}

	if err := c.Login(ctx, sess, creds); err != nil {
		return &reservation.StageError{Stage: reservation.StageLogin, Err: err}
	}
	log.Info("logged in")

	if err := c.Stage(ctx, sess, slot); err != nil {
		return &reservation.StageError{Stage: reservation.StageStaging, Err: err}
	}
	log.Info("staged reservation")

	if err := c.Confirm(ctx, sess); err != nil {
		return &reservation.StageError{Stage: reservation.StageConfirmation, Err: err}
	}
	log.Info("confirmed reservation")
	return nil
}
