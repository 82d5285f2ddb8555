package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/aaacapital/site-api/internal/usecase"
)

// ViewInvalidator is the cache side of the worker.
type ViewInvalidator interface {
	Invalidate(views ...string)
}

// LeadNotifier is the mail side of the worker.
type LeadNotifier interface {
	SendLeadNotification(payload usecase.LeadCapturedPayload) error
}

// Worker drains both site queues: invalidation events purge the view
// cache, lead events become admin notification emails. It never touches
// the database.
type Worker struct {
	Channel  *amqp.Channel
	Cache    ViewInvalidator
	Notifier LeadNotifier
}

func NewWorker(ch *amqp.Channel, cache ViewInvalidator, notifier LeadNotifier) *Worker {
	return &Worker{Channel: ch, Cache: cache, Notifier: notifier}
}

// Start blocks; run it in its own goroutine.
func (w *Worker) Start() {
	go w.consume(InvalidationQueue, w.handleInvalidation)
	w.consume(NotificationQueue, w.handleNotification)
}

func (w *Worker) consume(queueName string, handle func(amqp.Delivery) error) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("[worker] failed to register consumer on %s: %s", queueName, err)
	}

	log.Printf("[worker] waiting on queue '%s'", queueName)

	for d := range msgs {
		if err := handle(d); err != nil {
			log.Printf("[worker] %s: %s", queueName, err)
			// Malformed or failed message goes to the DLQ, not back in line.
			d.Nack(false, false)
			continue
		}
		d.Ack(false)
	}
}

func (w *Worker) handleInvalidation(d amqp.Delivery) error {
	var payload InvalidationPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		return err
	}
	w.Cache.Invalidate(payload.Views...)
	return nil
}

func (w *Worker) handleNotification(d amqp.Delivery) error {
	var payload usecase.LeadCapturedPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		return err
	}
	return w.Notifier.SendLeadNotification(payload)
}
