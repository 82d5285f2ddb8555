package entity

import (
	"time"

	"github.com/google/uuid"
)

// ResourceDownload is one row of the append-only download audit ledger.
// A row is written for every access attempt whose token lookup succeeds,
// whether or not the content is ultimately served.
type ResourceDownload struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	LeadID     string    `json:"lead_id"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"user_agent"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewResourceDownload(resourceID, leadID, ip, userAgent string) *ResourceDownload {
	return &ResourceDownload{
		ID:         uuid.New().String(),
		ResourceID: resourceID,
		LeadID:     leadID,
		IP:         ip,
		UserAgent:  userAgent,
		CreatedAt:  time.Now(),
	}
}
