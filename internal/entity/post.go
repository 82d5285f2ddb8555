package entity

import (
	"time"

	"github.com/google/uuid"
)

// Post is a news/blog article rendered from markdown on the public site.
type Post struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Excerpt         string    `json:"excerpt,omitempty"`
	MarkdownContent string    `json:"markdown_content"`
	CoverURL        string    `json:"cover_url,omitempty"`
	Published       bool      `json:"published"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewPost(title, slug, excerpt, markdownContent, coverURL string) *Post {
	now := time.Now()
	return &Post{
		ID:              uuid.New().String(),
		Title:           title,
		Slug:            slug,
		Excerpt:         excerpt,
		MarkdownContent: markdownContent,
		CoverURL:        coverURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
