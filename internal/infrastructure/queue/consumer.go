package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/bankcore/customer-service/internal/core/domain"
)

// EventConsumer drains the customer events queue and logs what it sees. It is
// the hook point for read models or notifications; today it only observes.
type EventConsumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     zerolog.Logger
}

// NewEventConsumer dials RabbitMQ and binds a durable queue to every
// customer.* routing key on the events exchange.
func NewEventConsumer(amqpURL, queueName string, log zerolog.Logger) (*EventConsumer, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp.Dial(cleanURL)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	if err := channel.ExchangeDeclare(customerExchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := channel.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := channel.QueueBind(queueName, "customer.*", customerExchange, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &EventConsumer{conn: conn, channel: channel, queue: queueName, log: log}, nil
}

// Start consumes until ctx is cancelled.
func (c *EventConsumer) Start(ctx context.Context) error {
	deliveries, err := c.channel.Consume(c.queue, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-deliveries:
				if !ok {
					return
				}
				var event domain.CustomerEvent
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					c.log.Warn().Err(err).Str("message_id", msg.MessageId).Msg("malformed customer event")
					continue
				}
				c.log.Info().
					Str("event_type", event.EventType).
					Str("customer_id", event.Customer.ID).
					Time("timestamp", event.Timestamp).
					Msg("customer event received")
			}
		}
	}()
	return nil
}

// Close releases channel and connection resources.
func (c *EventConsumer) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
