package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aaacapital/site-api/internal/entity"
	"github.com/aaacapital/site-api/internal/usecase"
)

type PostAdminRepository interface {
	List(ctx context.Context) ([]*entity.Post, error)
	Create(ctx context.Context, post *entity.Post) error
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id string) error
}

type AdminPostHandler struct {
	Repo     PostAdminRepository
	Producer usecase.EventProducerInterface
}

func NewAdminPostHandler(repo PostAdminRepository, producer usecase.EventProducerInterface) *AdminPostHandler {
	return &AdminPostHandler{Repo: repo, Producer: producer}
}

type postPayload struct {
	ID              string `json:"id,omitempty"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Excerpt         string `json:"excerpt"`
	MarkdownContent string `json:"markdown_content"`
	CoverURL        string `json:"cover_url"`
	Published       bool   `json:"published"`
}

func (p postPayload) validate() usecase.ValidationErrors {
	var errs usecase.ValidationErrors
	if p.Title == "" {
		errs = append(errs, usecase.ValidationError{Field: "title", Message: "is required"})
	}
	if p.Slug == "" {
		errs = append(errs, usecase.ValidationError{Field: "slug", Message: "is required"})
	} else if !usecase.IsValidSlug(p.Slug) {
		errs = append(errs, usecase.ValidationError{Field: "slug", Message: "must contain only lowercase letters, digits and hyphens"})
	}
	if p.MarkdownContent == "" {
		errs = append(errs, usecase.ValidationError{Field: "markdown_content", Message: "is required"})
	}
	return errs
}

func (h *AdminPostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list posts")
		return
	}
	if posts == nil {
		posts = []*entity.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *AdminPostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload postPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Details: errs})
		return
	}

	post := entity.NewPost(payload.Title, payload.Slug, payload.Excerpt, payload.MarkdownContent, payload.CoverURL)
	post.Published = payload.Published

	if err := h.Repo.Create(r.Context(), post); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create post")
		return
	}

	invalidate(h.Producer, "posts", "post:"+post.Slug)
	writeJSON(w, http.StatusCreated, post)
}

func (h *AdminPostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload postPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Details: errs})
		return
	}

	post := &entity.Post{
		ID:              chi.URLParam(r, "id"),
		Title:           payload.Title,
		Slug:            payload.Slug,
		Excerpt:         payload.Excerpt,
		MarkdownContent: payload.MarkdownContent,
		CoverURL:        payload.CoverURL,
		Published:       payload.Published,
	}

	if err := h.Repo.Update(r.Context(), post); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update post")
		return
	}

	invalidate(h.Producer, "posts", "post:"+post.Slug)
	writeJSON(w, http.StatusOK, post)
}

func (h *AdminPostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete post")
		return
	}

	invalidate(h.Producer, "posts")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
