package entity

import "github.com/google/uuid"

type GalleryItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Alt        string `json:"alt,omitempty"`
	Category   string `json:"category"`
	EventMonth string `json:"event_month,omitempty"`
	EventYear  string `json:"event_year,omitempty"`
	Featured   bool   `json:"featured"`
	SortOrder  int    `json:"sort_order"`
	Published  bool   `json:"published"`
	URL        string `json:"url"`
	PublicID   string `json:"public_id"`
}

func NewGalleryItem(title, category, url, publicID string) *GalleryItem {
	return &GalleryItem{
		ID:        uuid.New().String(),
		Title:     title,
		Category:  category,
		URL:       url,
		PublicID:  publicID,
		Published: true,
	}
}
