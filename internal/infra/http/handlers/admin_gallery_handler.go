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

type GalleryAdminRepository interface {
	List(ctx context.Context) ([]*entity.GalleryItem, error)
	Create(ctx context.Context, item *entity.GalleryItem) error
	Update(ctx context.Context, item *entity.GalleryItem) error
	Delete(ctx context.Context, id string) error
}

type AdminGalleryHandler struct {
	Repo     GalleryAdminRepository
	Producer usecase.EventProducerInterface
}

func NewAdminGalleryHandler(repo GalleryAdminRepository, producer usecase.EventProducerInterface) *AdminGalleryHandler {
	return &AdminGalleryHandler{Repo: repo, Producer: producer}
}

type galleryItemPayload struct {
	Title      string `json:"title"`
	Alt        string `json:"alt"`
	Category   string `json:"category"`
	EventMonth string `json:"event_month"`
	EventYear  string `json:"event_year"`
	Featured   bool   `json:"featured"`
	SortOrder  int    `json:"sort_order"`
	Published  bool   `json:"published"`
	URL        string `json:"url"`
	PublicID   string `json:"public_id"`
}

func (p galleryItemPayload) validate() usecase.ValidationErrors {
	var errs usecase.ValidationErrors
	if p.Title == "" {
		errs = append(errs, usecase.ValidationError{Field: "title", Message: "is required"})
	}
	if p.Category == "" {
		errs = append(errs, usecase.ValidationError{Field: "category", Message: "is required"})
	}
	if p.URL == "" {
		errs = append(errs, usecase.ValidationError{Field: "url", Message: "is required"})
	}
	if p.PublicID == "" {
		errs = append(errs, usecase.ValidationError{Field: "public_id", Message: "is required"})
	}
	return errs
}

func (h *AdminGalleryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list gallery items")
		return
	}
	if items == nil {
		items = []*entity.GalleryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *AdminGalleryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload galleryItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Details: errs})
		return
	}

	item := entity.NewGalleryItem(payload.Title, payload.Category, payload.URL, payload.PublicID)
	item.Alt = payload.Alt
	item.EventMonth = payload.EventMonth
	item.EventYear = payload.EventYear
	item.Featured = payload.Featured
	item.SortOrder = payload.SortOrder
	item.Published = payload.Published

	if err := h.Repo.Create(r.Context(), item); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create gallery item")
		return
	}

	invalidate(h.Producer, "gallery")
	writeJSON(w, http.StatusCreated, item)
}

func (h *AdminGalleryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload galleryItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Details: errs})
		return
	}

	item := &entity.GalleryItem{
		ID:         chi.URLParam(r, "id"),
		Title:      payload.Title,
		Alt:        payload.Alt,
		Category:   payload.Category,
		EventMonth: payload.EventMonth,
		EventYear:  payload.EventYear,
		Featured:   payload.Featured,
		SortOrder:  payload.SortOrder,
		Published:  payload.Published,
		URL:        payload.URL,
		PublicID:   payload.PublicID,
	}

	if err := h.Repo.Update(r.Context(), item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "gallery item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update gallery item")
		return
	}

	invalidate(h.Producer, "gallery")
	writeJSON(w, http.StatusOK, item)
}

func (h *AdminGalleryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete gallery item")
		return
	}

	invalidate(h.Producer, "gallery")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
