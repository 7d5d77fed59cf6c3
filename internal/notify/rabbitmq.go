package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQNotifier publishes booking confirmations as JSON messages to a
// durable queue. A separate mailer consumer owns the actual delivery.
type RabbitMQNotifier struct {
	conn  *amqp091.Connection
	ch    *amqp091.Channel
	queue string
}

func NewRabbitMQNotifier(url, queue string) (*RabbitMQNotifier, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %q: %w", queue, err)
	}

	return &RabbitMQNotifier{
		conn:  conn,
		ch:    ch,
		queue: queue,
	}, nil
}

type confirmationMessage struct {
	Recipient string              `json:"recipient"`
	Summary   BookingConfirmation `json:"summary"`
}

func (n *RabbitMQNotifier) SendBookingConfirmation(ctx context.Context, recipient string, summary BookingConfirmation) error {
	body, err := json.Marshal(confirmationMessage{
		Recipient: recipient,
		Summary:   summary,
	})
	if err != nil {
		return fmt.Errorf("marshal confirmation: %w", err)
	}

	err = n.ch.PublishWithContext(ctx, "", n.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish confirmation: %w", err)
	}

	return nil
}

func (n *RabbitMQNotifier) Close() error {
	if err := n.ch.Close(); err != nil {
		_ = n.conn.Close()
		return err
	}
	return n.conn.Close()
}
