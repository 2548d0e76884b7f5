// Package events publishes booking lifecycle events to RabbitMQ.
// Publishing is best effort; a broker outage never fails a checkout.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/models"
)

// Publisher publishes events on a durable queue using the default
// exchange. Each publish dials a fresh connection so a dropped broker
// link never leaves the publisher wedged.
type Publisher struct {
	url    string
	queue  string
	logger *logrus.Logger
}

// NewPublisher creates a publisher. Returns nil when url is empty so
// callers can wire it straight into an optional dependency.
func NewPublisher(url, queue string, logger *logrus.Logger) *Publisher {
	if url == "" {
		return nil
	}
	if queue == "" {
		queue = "booking.confirmed"
	}
	return &Publisher{
		url:    url,
		queue:  queue,
		logger: logger,
	}
}

// PublishBookingConfirmed publishes a booking confirmed event.
// Messages are persistent and the queue is declared durable.
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, event models.BookingConfirmedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"queue":      p.queue,
		"booking_id": event.BookingID,
	}).Info("Published booking confirmed event")
	return nil
}
