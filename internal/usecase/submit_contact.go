package usecase

import (
	"context"
	"log"

	"github.com/aaacapital/site-api/internal/entity"
)

type ContactInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	InterestedIn string `json:"interested_in,omitempty"`
	Message      string `json:"message"`
}

type ContactOutput struct {
	Success bool   `json:"success"`
	LeadID  string `json:"lead_id"`
}

// SubmitContactUseCase records a contact-form lead and hands the admin
// notification to the queue. Publishing is fire-and-forget: a dead
// broker must never fail the submission.
type SubmitContactUseCase struct {
	LeadRepo LeadRepositoryInterface
	Producer EventProducerInterface
}

func NewSubmitContactUseCase(leadRepo LeadRepositoryInterface, producer EventProducerInterface) *SubmitContactUseCase {
	return &SubmitContactUseCase{LeadRepo: leadRepo, Producer: producer}
}

func (uc *SubmitContactUseCase) Execute(ctx context.Context, input ContactInput) (*ContactOutput, error) {
	if errs := ValidateContactInput(input); len(errs) > 0 {
		return nil, errs
	}

	interestedIn := input.InterestedIn
	if interestedIn == "" {
		interestedIn = "General Inquiry"
	}

	lead := entity.NewLead(input.Name, input.Email, input.Phone, "", interestedIn, entity.LeadSourceContactForm)
	lead.Message = input.Message
	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		return nil, &UpstreamError{Service: "database", Message: "failed to save lead", Err: err}
	}

	if uc.Producer != nil {
		payload := LeadCapturedPayload{
			LeadID:       lead.ID,
			Name:         lead.Name,
			Email:        lead.Email,
			Phone:        lead.Phone,
			InterestedIn: lead.InterestedIn,
			Message:      lead.Message,
			Source:       lead.Source,
		}
		if err := uc.Producer.PublishLeadCaptured(ctx, payload); err != nil {
			log.Printf("[contact] failed to publish lead notification: %v", err)
		}
	}

	return &ContactOutput{Success: true, LeadID: lead.ID}, nil
}
