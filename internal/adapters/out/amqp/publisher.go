// Package amqp publishes dispatch events to RabbitMQ.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// RoutingKeyJobAccepted is the routing key of ports.JobAcceptedEvent.
	RoutingKeyJobAccepted = "job.accepted"

	exchangeKind = "topic"
	contentType  = "application/json"
)

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Options tune publishing retries. Zero values fall back to defaults.
type Options struct {
	Retries    int
	RetryDelay time.Duration
}

// Publisher implements ports.EventPublisher on a topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	channel  Channel
	exchange string
	opts     Options
	logger   *slog.Logger
}

var _ ports.EventPublisher = (*Publisher)(nil)

// Dial connects to url and declares a durable topic exchange.
func Dial(url, exchange string, opts Options, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,     // name
		exchangeKind, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchange, err)
	}

	p := NewPublisher(ch, exchange, opts, logger)
	p.conn = conn

	logger.Info("RabbitMQ publisher ready", slog.String("exchange", exchange))
	return p, nil
}

// NewPublisher wraps an already open channel.
func NewPublisher(ch Channel, exchange string, opts Options, logger *slog.Logger) *Publisher {
	if opts.Retries <= 0 {
		opts.Retries = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 100 * time.Millisecond
	}

	return &Publisher{
		channel:  ch,
		exchange: exchange,
		opts:     opts,
		logger:   logger.With(slog.String("component", "amqp-publisher")),
	}
}

// PublishJobAccepted sends the event as persistent JSON, retrying with
// exponential backoff until the retries run out or ctx is done.
func (p *Publisher) PublishJobAccepted(ctx context.Context, event ports.JobAcceptedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", RoutingKeyJobAccepted, err)
	}

	msg := amqp.Publishing{
		ContentType:  contentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.JobID,
		Timestamp:    event.AcceptedAt,
		Type:         RoutingKeyJobAccepted,
		Body:         body,
	}

	var lastErr error
	delay := p.opts.RetryDelay
	for attempt := 1; attempt <= p.opts.Retries; attempt++ {
		lastErr = p.channel.PublishWithContext(ctx,
			p.exchange,            // exchange
			RoutingKeyJobAccepted, // routing key
			false,                 // mandatory
			false,                 // immediate
			msg,
		)
		if lastErr == nil {
			p.logger.Debug("event published",
				slog.String("routing_key", RoutingKeyJobAccepted),
				slog.String("job_id", event.JobID),
				slog.Int("attempt", attempt),
			)
			return nil
		}

		if attempt == p.opts.Retries {
			break
		}

		p.logger.Warn("publish failed, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("retry_after", delay),
			slog.Any("error", lastErr),
		)

		select {
		case <-ctx.Done():
			return fmt.Errorf("publish %s interrupted: %w", RoutingKeyJobAccepted, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return fmt.Errorf("failed to publish %s after %d attempts: %w", RoutingKeyJobAccepted, p.opts.Retries, lastErr)
}

// Close closes the channel and, when dialled, the connection.
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.logger.Error("failed to close channel", slog.Any("error", err))
	}
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
