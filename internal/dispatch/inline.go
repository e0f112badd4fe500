package dispatch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Inline runs each task on its own goroutine in this process.
type Inline struct {
	handler Handler
	timeout time.Duration
	logger  *zap.Logger
	wg      sync.WaitGroup
}

func NewInline(h Handler, timeout time.Duration, logger *zap.Logger) *Inline {
	return &Inline{handler: h, timeout: timeout, logger: logger}
}

// Dispatch returns immediately. The task does not inherit ctx, which usually
// belongs to an HTTP request that is about to finish.
func (d *Inline) Dispatch(_ context.Context, t Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.handler.Handle(ctx, t); err != nil {
			d.logger.Error("task failed", zap.String("task_id", t.ID), zap.String("command", string(t.Command)), zap.Error(err))
		}
	}()
	return nil
}

// Wait blocks until every dispatched task has finished or ctx is done.
func (d *Inline) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
