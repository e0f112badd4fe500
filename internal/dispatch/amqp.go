package dispatch

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const sealedContentType = "application/vnd.courtbot.task"

// Connect dials the broker and declares the durable task queue.
func Connect(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return conn, ch, nil
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher puts sealed tasks on the queue.
type Publisher struct {
	ch     publisher
	queue  string
	sealer *Sealer
}

func NewPublisher(ch publisher, queue string, sealer *Sealer) *Publisher {
	return &Publisher{ch: ch, queue: queue, sealer: sealer}
}

func (p *Publisher) Dispatch(ctx context.Context, t Task) error {
	body, err := p.sealer.Seal(t)
	if err != nil {
		return err
	}
	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  sealedContentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    t.ID,
		Timestamp:    t.IssuedAt,
		Type:         string(t.Command),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish task %s: %w", t.ID, err)
	}
	return nil
}

// Worker executes tasks from the queue one at a time.
type Worker struct {
	sealer  *Sealer
	handler Handler
	timeout time.Duration
	logger  *zap.Logger
}

func NewWorker(sealer *Sealer, h Handler, timeout time.Duration, logger *zap.Logger) *Worker {
	return &Worker{sealer: sealer, handler: h, timeout: timeout, logger: logger}
}

// Consume registers a manual-ack consumer with a prefetch of one.
func Consume(ch *amqp.Channel, queue string) (<-chan amqp.Delivery, error) {
	if err := ch.Qos(1, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}
	msgs, err := ch.Consume(queue, "courtbot-worker", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("register consumer: %w", err)
	}
	return msgs, nil
}

// Run handles deliveries until ctx is done or the channel closes.
func (w *Worker) Run(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks every delivery, including ones that fail. Booking is not
// idempotent, so a redelivered task could book twice.
func (w *Worker) handle(parent context.Context, d amqp.Delivery) {
	defer func() {
		if err := d.Ack(false); err != nil {
			w.logger.Warn("ack failed", zap.Uint64("delivery_tag", d.DeliveryTag), zap.Error(err))
		}
	}()

	t, err := w.sealer.Open(d.Body)
	if err != nil {
		w.logger.Warn("dropping task", zap.String("message_id", d.MessageId), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(parent, w.timeout)
	defer cancel()
	log := w.logger.With(zap.String("task_id", t.ID), zap.String("command", string(t.Command)))
	log.Info("running task")
	if err := w.handler.Handle(ctx, t); err != nil {
		log.Error("task failed", zap.Error(err))
	}
}
