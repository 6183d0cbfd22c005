package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const statusExchange = "order_status_fanout"

// AMQPNotifier publishes status events to a RabbitMQ fanout exchange.
// Every dashboard binds its own queue to the exchange and sees every event.
type AMQPNotifier struct {
	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
	url     string
	log     *slog.Logger
}

// NewAMQPNotifier connects to RabbitMQ and declares the status exchange
func NewAMQPNotifier(url string, log *slog.Logger) (*AMQPNotifier, error) {
	n := &AMQPNotifier{url: url, log: log}
	if err := n.connect(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *AMQPNotifier) connect() error {
	conn, err := amqp091.Dial(n.url)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		statusExchange, // name
		"fanout",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	n.conn = conn
	n.channel = channel
	return nil
}

// StatusChanged publishes the event as JSON. A broken connection is
// re-dialed once before giving up.
func (n *AMQPNotifier) StatusChanged(ctx context.Context, event StatusEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.conn.IsClosed() {
		if err := n.connect(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = n.channel.PublishWithContext(ctx,
		statusExchange, // exchange
		"",             // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish status event: %w", err)
	}

	n.log.Debug("status event published",
		"order_id", event.OrderID,
		"new_status", event.NewStatus,
	)
	return nil
}

// Close shuts the channel and connection down
func (n *AMQPNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.channel != nil {
		n.channel.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
