package queue

import (
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"github.com/aaacapital/site-api/internal/usecase"
)

type fakeInvalidator struct {
	views []string
}

func (f *fakeInvalidator) Invalidate(views ...string) {
	f.views = append(f.views, views...)
}

type fakeNotifier struct {
	payloads []usecase.LeadCapturedPayload
	err      error
}

func (f *fakeNotifier) SendLeadNotification(payload usecase.LeadCapturedPayload) error {
	f.payloads = append(f.payloads, payload)
	return f.err
}

func delivery(t *testing.T, payload any) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	return amqp.Delivery{Body: body}
}

func TestHandleInvalidationPurgesViews(t *testing.T) {
	cache := &fakeInvalidator{}
	w := NewWorker(nil, cache, &fakeNotifier{})

	err := w.handleInvalidation(delivery(t, InvalidationPayload{Views: []string{"posts", "post:tax-basics"}}))

	assert.NoError(t, err)
	assert.Equal(t, []string{"posts", "post:tax-basics"}, cache.views)
}

func TestHandleInvalidationRejectsMalformedJSON(t *testing.T) {
	cache := &fakeInvalidator{}
	w := NewWorker(nil, cache, &fakeNotifier{})

	err := w.handleInvalidation(amqp.Delivery{Body: []byte("{not json")})

	assert.Error(t, err)
	assert.Empty(t, cache.views)
}

func TestHandleNotificationSendsEmail(t *testing.T) {
	notifier := &fakeNotifier{}
	w := NewWorker(nil, &fakeInvalidator{}, notifier)

	payload := usecase.LeadCapturedPayload{
		LeadID: "lead-1",
		Name:   "Jane Doe",
		Email:  "jane@x.com",
		Source: "contact_form",
	}
	err := w.handleNotification(delivery(t, payload))

	assert.NoError(t, err)
	assert.Len(t, notifier.payloads, 1)
	assert.Equal(t, "jane@x.com", notifier.payloads[0].Email)
}

func TestHandleNotificationSurfacesSendFailure(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("smtp unreachable")}
	w := NewWorker(nil, &fakeInvalidator{}, notifier)

	err := w.handleNotification(delivery(t, usecase.LeadCapturedPayload{LeadID: "lead-2"}))

	assert.Error(t, err)
}
