package entity

import (
	"time"

	"github.com/google/uuid"
)

// Resource is a publishable downloadable document (lead magnet).
// The PDF itself lives in object storage; PDFURL/PDFPublicID locate it.
type Resource struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	PDFURL      string    `json:"-"`
	PDFPublicID string    `json:"-"`
	CampaignTag string    `json:"campaign_tag,omitempty"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewResource(title, slug, description, coverURL, pdfURL, pdfPublicID string) *Resource {
	now := time.Now()
	return &Resource{
		ID:          uuid.New().String(),
		Title:       title,
		Slug:        slug,
		Description: description,
		CoverURL:    coverURL,
		PDFURL:      pdfURL,
		PDFPublicID: pdfPublicID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
