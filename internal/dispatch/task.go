// Package dispatch moves slash commands from the web front end to whatever
// executes them, either a RabbitMQ worker or a goroutine in the same process.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type Command string

const (
	CommandLook Command = "look"
	CommandBook Command = "book"
)

// Task is one slash command waiting to be executed.
type Task struct {
	ID          string    `json:"id" validate:"required,uuid"`
	Command     Command   `json:"command" validate:"required,oneof=look book"`
	Text        string    `json:"text" validate:"max=512"`
	ResponseURL string    `json:"response_url" validate:"required,url"`
	ChannelID   string    `json:"channel_id"`
	UserName    string    `json:"user_name"`
	IssuedAt    time.Time `json:"issued_at"`
}

func NewTask(cmd Command, text, responseURL, channelID, userName string, now time.Time) Task {
	return Task{
		ID:          uuid.NewString(),
		Command:     cmd,
		Text:        text,
		ResponseURL: responseURL,
		ChannelID:   channelID,
		UserName:    userName,
		IssuedAt:    now.UTC(),
	}
}

// Validate reports whether t can be executed. Every dispatcher checks it
// before accepting a task.
func (t Task) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid task %s: %w", t.ID, err)
	}
	return nil
}

// Handler executes a task. It owns replying to the user; errors are for logs.
type Handler interface {
	Handle(ctx context.Context, t Task) error
}

type HandlerFunc func(ctx context.Context, t Task) error

func (f HandlerFunc) Handle(ctx context.Context, t Task) error { return f(ctx, t) }

// Dispatcher hands a task off without waiting for it to run.
type Dispatcher interface {
	Dispatch(ctx context.Context, t Task) error
}
