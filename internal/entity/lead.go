package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	LeadSourceContactForm      = "contact_form"
	LeadSourceResourceDownload = "resource_download"
)

// Lead is a prospect's captured contact record. Rows are insert-only:
// repeated submissions from the same person create independent leads.
type Lead struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	City         string    `json:"city,omitempty"`
	InterestedIn string    `json:"interested_in,omitempty"`
	Message      string    `json:"message,omitempty"`
	Source       string    `json:"source"`
	ResourceID   string    `json:"resource_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewLead(name, email, phone, city, interestedIn, source string) *Lead {
	return &Lead{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		City:         city,
		InterestedIn: interestedIn,
		Source:       source,
		CreatedAt:    time.Now(),
	}
}
