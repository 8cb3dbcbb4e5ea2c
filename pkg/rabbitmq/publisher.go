package rabbitmq

import (
	"context"
	"fmt"
	"log"

	"github.com/campushub/room-booking-service/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "bookings"
	ExchangeKind = "topic"
)

type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return &Publisher{conn: conn, channel: ch}, nil
}

// Publish hands one outbox record to the broker. The payload was serialized
// when the record was written, so it goes out verbatim; the outbox row id
// doubles as the MessageId so downstream consumers can deduplicate redelivery.
func (p *Publisher) Publish(ctx context.Context, routingKey string, record *models.NotificationOutbox) error {
	if err := p.channel.PublishWithContext(
		ctx,
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    record.ID,
			Type:         record.EventType,
			Timestamp:    record.CreatedAt,
			Body:         record.Payload,
		},
	); err != nil {
		return fmt.Errorf("publish %s: %w", record.EventType, err)
	}

	log.Printf("[RabbitMQ] published %s %s to %s/%s", record.EventType, record.ID, ExchangeName, routingKey)
	return nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
