// Package bot turns a slash command into the text courtbot replies with.
package bot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rlucioni/courtbot/internal/application/usecases"
	"github.com/rlucioni/courtbot/internal/dispatch"
	"github.com/rlucioni/courtbot/internal/domain/reservation"
	"github.com/rlucioni/courtbot/internal/messages"
	"github.com/rlucioni/courtbot/internal/slack"
)

type Replier interface {
	Reply(ctx context.Context, responseURL, text string) error
}

type Bot struct {
	Look    usecases.Look
	Book    usecases.Book
	Replier Replier
	Logger  *zap.Logger
}

// Respond runs cmd and returns the reply. Failures are logged and answered
// with a generic apology.
func (b Bot) Respond(ctx context.Context, cmd dispatch.Command, text string) string {
	log := b.logger().With(zap.String("command", string(cmd)), zap.String("text", text))

	switch cmd {
	case dispatch.CommandLook:
		offset := slack.ParseLook(text)
		avail, err := b.Look.Execute(ctx, offset)
		if err != nil {
			log.Error("looking failed", zap.Error(err))
			return messages.Failure
		}
		return messages.Availability(avail, offset)

	case dispatch.CommandBook:
		req, err := slack.ParseBook(text)
		if err != nil {
			log.Info("request text does not match booking grammar", zap.Error(err))
			return messages.Usage
		}
		username, err := b.Book.Execute(ctx, req)
		if err != nil {
			var se *reservation.StageError
			if errors.As(err, &se) {
				log = log.With(zap.String("stage", string(se.Stage)))
			}
			log.Error("booking failed", zap.Error(err))
			return messages.Failure
		}
		return messages.Booked(req, username)
	}

	log.Error("unknown command")
	return messages.Failure
}

// Handle executes a dispatched task and posts the reply to its response URL.
func (b Bot) Handle(ctx context.Context, t dispatch.Task) error {
	b.logger().Info("executing task", zap.String("task_id", t.ID), zap.String("command", string(t.Command)), zap.String("user", t.UserName))
	text := b.Respond(ctx, t.Command, t.Text)
	if b.Replier == nil {
		return fmt.Errorf("task %s: no replier", t.ID)
	}
	return b.Replier.Reply(ctx, t.ResponseURL, text)
}

func (b Bot) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}
