// Package queue consumes upload events from RabbitMQ with manual
// acknowledgment. The broker is the retry authority: a task failure leaves
// the message unacknowledged and requeued, the worker performs no internal
// retries of its own.
package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/fishfinder/fishfinder-go/internal/conf"
	"github.com/fishfinder/fishfinder-go/internal/errors"
	"github.com/fishfinder/fishfinder-go/internal/logging"
)

// reconnectDelay is the wait between reconnection attempts after the broker
// connection drops.
const reconnectDelay = 5 * time.Second

// Message is one received queue message.
type Message struct {
	Body        []byte
	RoutingKey  string
	DeliveryTag uint64
	Redelivered bool
}

// CallbackFunc processes a message. Return nil to acknowledge (success or
// recognised skip), or an error to leave the message for redelivery.
type CallbackFunc func(ctx context.Context, msg *Message) error

// Consumer is a RabbitMQ consumer processing exactly one message at a time.
type Consumer struct {
	url        string
	exchange   string
	queue      string
	routingKey string

	conn    *amqp.Connection
	channel *amqp.Channel
	log     *slog.Logger
}

// NewConsumer creates a consumer and establishes the initial connection so
// callers fail fast if the broker is unreachable.
func NewConsumer(settings *conf.Settings) (*Consumer, error) {
	c := &Consumer{
		url:        settings.Queue.URL,
		exchange:   settings.Queue.Exchange,
		queue:      settings.Queue.Queue,
		routingKey: settings.Queue.RoutingKey,
		log:        logging.ForService("queue"),
	}

	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

// connect tears down any existing channel/connection and recreates them,
// declaring the durable exchange, queue and binding.
func (c *Consumer) connect() error {
	c.closeResources()

	conn, err := amqp.Dial(c.url)
	if err != nil {
		return errors.New(err).
			Component("queue").
			Category(errors.CategoryQueue).
			Context("operation", "dial").
			Build()
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return errors.New(err).
			Component("queue").
			Category(errors.CategoryQueue).
			Context("operation", "channel").
			Build()
	}

	if err := ch.ExchangeDeclare(c.exchange, "direct", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return errors.New(err).
			Component("queue").
			Category(errors.CategoryQueue).
			Context("operation", "exchange-declare").
			Context("exchange", c.exchange).
			Build()
	}

	q, err := ch.QueueDeclare(c.queue, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return errors.New(err).
			Component("queue").
			Category(errors.CategoryQueue).
			Context("operation", "queue-declare").
			Context("queue", c.queue).
			Build()
	}

	if err := ch.QueueBind(q.Name, c.routingKey, c.exchange, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return errors.New(err).
			Component("queue").
			Category(errors.CategoryQueue).
			Context("operation", "queue-bind").
			Build()
	}

	// One unacknowledged message at a time: exactly one task in flight per
	// worker instance.
	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return errors.New(err).
			Component("queue").
			Category(errors.CategoryQueue).
			Context("operation", "qos").
			Build()
	}

	c.conn = conn
	c.channel = ch
	c.log.Info("Connected to broker", "exchange", c.exchange, "queue", c.queue)
	return nil
}

// Start consumes messages until the context is cancelled, reconnecting when
// the broker connection drops. Reconnection is retried until it succeeds;
// consuming never resumes on a dead connection.
func (c *Consumer) Start(ctx context.Context, callback CallbackFunc) error {
	for {
		if err := c.consumeOnce(ctx, callback); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}

		c.log.Warn("Broker connection lost, reconnecting")
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(reconnectDelay):
			}
			if err := c.connect(); err != nil {
				c.log.Error("Reconnect failed", "error", err)
				continue
			}
			break
		}
	}
}

// consumeOnce drains the delivery channel until it closes (broker drop) or
// the context is cancelled. Returns a non-nil error only for unrecoverable
// consumer setup failures.
func (c *Consumer) consumeOnce(ctx context.Context, callback CallbackFunc) error {
	if c.channel == nil {
		return errors.Newf("consumer is not connected").
			Component("queue").
			Category(errors.CategoryQueue).
			Context("operation", "consume").
			Build()
	}

	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return errors.New(err).
			Component("queue").
			Category(errors.CategoryQueue).
			Context("operation", "consume").
			Build()
	}

	for {
		select {
		case <-ctx.Done():
			c.closeResources()
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}
			c.handleDelivery(ctx, &delivery, callback)
		}
	}
}

// handleDelivery runs the callback and settles the message: ack on nil,
// nack with requeue on error so the broker redelivers after its own policy.
func (c *Consumer) handleDelivery(ctx context.Context, delivery *amqp.Delivery, callback CallbackFunc) {
	msg := &Message{
		Body:        delivery.Body,
		RoutingKey:  delivery.RoutingKey,
		DeliveryTag: delivery.DeliveryTag,
		Redelivered: delivery.Redelivered,
	}

	err := callback(ctx, msg)
	if err != nil {
		c.log.Error("Task failed, message returned to queue",
			"delivery_tag", msg.DeliveryTag,
			"redelivered", msg.Redelivered,
			"error", err)
		if nackErr := delivery.Nack(false, true); nackErr != nil {
			c.log.Error("Nack failed", "delivery_tag", msg.DeliveryTag, "error", nackErr)
		}
		return
	}

	if ackErr := delivery.Ack(false); ackErr != nil {
		c.log.Error("Ack failed", "delivery_tag", msg.DeliveryTag, "error", ackErr)
	}
}

// Close shuts the consumer down.
func (c *Consumer) Close() {
	c.closeResources()
}

func (c *Consumer) closeResources() {
	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}
