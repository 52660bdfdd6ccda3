package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shoporbit/shop-api/internal/usecase"
)

const (
	mailExchange   = "mail.events"
	mailRoutingKey = "mail.send"

	// MailQueueName is the queue the delivery worker consumes from.
	MailQueueName = "mail.send.q"
)

// MailProducer publishes outbound email jobs. Delivery happens out of band
// so HTTP requests never wait on SMTP.
type MailProducer struct {
	ch *amqp.Channel
}

// NewMailProducer declares the exchange, queue, and binding once at startup.
func NewMailProducer(ch *amqp.Channel) (*MailProducer, error) {
	if err := ch.ExchangeDeclare(
		mailExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		MailQueueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, mailRoutingKey, mailExchange, false, nil); err != nil {
		return nil, fmt.Errorf("queue bind: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}

	return &MailProducer{ch: ch}, nil
}

func (p *MailProducer) Enqueue(ctx context.Context, job usecase.MailJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal mail job: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive broker restarts
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, mailExchange, mailRoutingKey, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

var _ usecase.MailQueue = (*MailProducer)(nil)
