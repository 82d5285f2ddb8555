package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/aaacapital/site-api/internal/usecase"
)

// InvalidationPayload names the logical public views whose cached
// renderings an admin write has made stale.
type InvalidationPayload struct {
	Views []string `json:"views"`
}

type Producer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) PublishLeadCaptured(ctx context.Context, payload usecase.LeadCapturedPayload) error {
	return p.publish(ctx, NotificationKey, payload)
}

func (p *Producer) PublishInvalidation(ctx context.Context, views ...string) error {
	if len(views) == 0 {
		return nil
	}
	return p.publish(ctx, InvalidationKey, InvalidationPayload{Views: views})
}

func (p *Producer) publish(ctx context.Context, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publishing to RabbitMQ: %w", err)
	}

	return nil
}
