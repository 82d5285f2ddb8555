package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aaacapital/site-api/internal/entity"
)

func TestSubmitContactSuccess(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	producer := new(MockEventProducer)

	var savedLead *entity.Lead
	leadRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		savedLead = args.Get(1).(*entity.Lead)
	}).Return(nil)

	var published LeadCapturedPayload
	producer.On("PublishLeadCaptured", ctx, mock.Anything).Run(func(args mock.Arguments) {
		published = args.Get(1).(LeadCapturedPayload)
	}).Return(nil)

	uc := NewSubmitContactUseCase(leadRepo, producer)
	output, err := uc.Execute(ctx, ContactInput{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Message: "Please review my portfolio",
	})

	assert.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, savedLead.ID, output.LeadID)
	assert.Equal(t, entity.LeadSourceContactForm, savedLead.Source)
	assert.Equal(t, "General Inquiry", savedLead.InterestedIn)
	assert.Equal(t, savedLead.ID, published.LeadID)
	assert.Equal(t, "Please review my portfolio", published.Message)
}

func TestSubmitContactSurvivesDeadBroker(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	leadRepo.On("Create", ctx, mock.Anything).Return(nil)

	producer := new(MockEventProducer)
	producer.On("PublishLeadCaptured", ctx, mock.Anything).Return(errors.New("channel closed"))

	uc := NewSubmitContactUseCase(leadRepo, producer)
	output, err := uc.Execute(ctx, ContactInput{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Message: "Please review my portfolio",
	})

	// Notification failure never fails the submission.
	assert.NoError(t, err)
	assert.True(t, output.Success)
}

func TestSubmitContactValidation(t *testing.T) {
	uc := NewSubmitContactUseCase(new(MockLeadRepository), new(MockEventProducer))

	_, err := uc.Execute(context.Background(), ContactInput{Name: "Jane Doe", Email: "jane@x.com"})

	var validationErrs ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "message", validationErrs[0].Field)
}
