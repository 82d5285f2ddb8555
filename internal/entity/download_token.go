package entity

import (
	"time"

	"github.com/google/uuid"
)

// DownloadToken is a single-use, time-limited grant of access to one
// Resource for one Lead. TokenHash holds the SHA-256 digest of the raw
// secret; the secret itself is returned to the caller once and never
// persisted.
type DownloadToken struct {
	ID         string     `json:"id"`
	TokenHash  string     `json:"-"`
	ResourceID string     `json:"resource_id"`
	LeadID     string     `json:"lead_id"`
	ExpiresAt  time.Time  `json:"expires_at"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func NewDownloadToken(tokenHash, resourceID, leadID string, expiresAt time.Time) *DownloadToken {
	return &DownloadToken{
		ID:         uuid.New().String(),
		TokenHash:  tokenHash,
		ResourceID: resourceID,
		LeadID:     leadID,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now(),
	}
}

func (t *DownloadToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t *DownloadToken) IsUsed() bool {
	return t.UsedAt != nil
}
