// Package rabbitmq publishes post lifecycle events for downstream
// consumers (feed fanout, search indexing, and the like).
package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

const postEventsQueue = "post_events"

// PostEvent is the message body published for every post mutation.
type PostEvent struct {
	Action string    `json:"action"` // "created" or "deleted"
	PostID uint      `json:"post_id"`
	UserID string    `json:"user_id"`
	Title  string    `json:"title"`
	At     time.Time `json:"at"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel, and declares the durable
// post events queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		postEventsQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s queue: %w", postEventsQueue, err)
	}

	log.Printf("RabbitMQ client connected, %s queue declared", postEventsQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ client: %v", errs)
	}
	return nil
}

// PublishPostEvent publishes a post lifecycle event as a persistent JSON
// message on the post events queue.
func (c *Client) PublishPostEvent(event PostEvent) error {
	if c == nil || c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal post event: %w", err)
	}

	err = c.channel.Publish(
		"",              // default exchange
		postEventsQueue, // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.At,
		})
	if err != nil {
		return fmt.Errorf("failed to publish post event: %w", err)
	}
	return nil
}

// ConsumePostEvents delivers queued post events to messageHandler. A nil
// error from the handler acknowledges the message; anything else requeues it.
func (c *Client) ConsumePostEvents(messageHandler func(event PostEvent) error) error {
	if c == nil || c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		postEventsQueue,
		"",    // consumer tag
		false, // auto-ack off, we ack manually
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for msg := range msgs {
		var event PostEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			log.Printf("Dropping undecodable post event: %v", err)
			msg.Nack(false, false)
			continue
		}
		if err := messageHandler(event); err != nil {
			log.Printf("Post event handler failed, requeueing: %v", err)
			msg.Nack(false, true)
			continue
		}
		msg.Ack(false)
	}
	return nil
}
