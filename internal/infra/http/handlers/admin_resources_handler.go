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

type ResourceAdminRepository interface {
	List(ctx context.Context) ([]*entity.Resource, error)
	FindByID(ctx context.Context, id string) (*entity.Resource, error)
	Create(ctx context.Context, res *entity.Resource) error
	Update(ctx context.Context, res *entity.Resource) error
	Delete(ctx context.Context, id string) error
}

type AdminResourceHandler struct {
	Repo     ResourceAdminRepository
	Producer usecase.EventProducerInterface
}

func NewAdminResourceHandler(repo ResourceAdminRepository, producer usecase.EventProducerInterface) *AdminResourceHandler {
	return &AdminResourceHandler{Repo: repo, Producer: producer}
}

type resourcePayload struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url"`
	PDFURL      string `json:"pdf_url"`
	PDFPublicID string `json:"pdf_public_id"`
	CampaignTag string `json:"campaign_tag"`
	Published   bool   `json:"published"`
}

func (p resourcePayload) validate() usecase.ValidationErrors {
	var errs usecase.ValidationErrors
	if p.Title == "" {
		errs = append(errs, usecase.ValidationError{Field: "title", Message: "is required"})
	}
	if p.Slug == "" {
		errs = append(errs, usecase.ValidationError{Field: "slug", Message: "is required"})
	} else if !usecase.IsValidSlug(p.Slug) {
		errs = append(errs, usecase.ValidationError{Field: "slug", Message: "must contain only lowercase letters, digits and hyphens"})
	}
	if p.PDFURL == "" {
		errs = append(errs, usecase.ValidationError{Field: "pdf_url", Message: "is required"})
	}
	if p.PDFPublicID == "" {
		errs = append(errs, usecase.ValidationError{Field: "pdf_public_id", Message: "is required"})
	}
	return errs
}

func (h *AdminResourceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	resources, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list resources")
		return
	}
	if resources == nil {
		resources = []*entity.Resource{}
	}
	writeJSON(w, http.StatusOK, resources)
}

func (h *AdminResourceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload resourcePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Details: errs})
		return
	}

	res := entity.NewResource(payload.Title, payload.Slug, payload.Description, payload.CoverURL, payload.PDFURL, payload.PDFPublicID)
	res.CampaignTag = payload.CampaignTag
	res.Published = payload.Published

	if err := h.Repo.Create(r.Context(), res); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create resource")
		return
	}

	invalidate(h.Producer, "resources")
	writeJSON(w, http.StatusCreated, res)
}

func (h *AdminResourceHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload resourcePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Details: errs})
		return
	}

	existing, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load resource")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	existing.Title = payload.Title
	existing.Slug = payload.Slug
	existing.Description = payload.Description
	existing.CoverURL = payload.CoverURL
	existing.PDFURL = payload.PDFURL
	existing.PDFPublicID = payload.PDFPublicID
	existing.CampaignTag = payload.CampaignTag
	existing.Published = payload.Published

	if err := h.Repo.Update(r.Context(), existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "resource not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update resource")
		return
	}

	invalidate(h.Producer, "resources")
	writeJSON(w, http.StatusOK, existing)
}

func (h *AdminResourceHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete resource")
		return
	}

	invalidate(h.Producer, "resources")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
