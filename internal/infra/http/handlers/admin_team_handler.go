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

type TeamAdminRepository interface {
	List(ctx context.Context) ([]*entity.TeamMember, error)
	Create(ctx context.Context, m *entity.TeamMember) error
	Update(ctx context.Context, m *entity.TeamMember) error
	Delete(ctx context.Context, id string) error
}

type AdminTeamHandler struct {
	Repo     TeamAdminRepository
	Producer usecase.EventProducerInterface
}

func NewAdminTeamHandler(repo TeamAdminRepository, producer usecase.EventProducerInterface) *AdminTeamHandler {
	return &AdminTeamHandler{Repo: repo, Producer: producer}
}

type teamMemberPayload struct {
	Name      string `json:"name"`
	RoleTitle string `json:"role_title"`
	Bio       string `json:"bio"`
	PhotoURL  string `json:"photo_url"`
	SortOrder int    `json:"sort_order"`
	Published bool   `json:"published"`
}

func (p teamMemberPayload) validate() usecase.ValidationErrors {
	var errs usecase.ValidationErrors
	if p.Name == "" {
		errs = append(errs, usecase.ValidationError{Field: "name", Message: "is required"})
	}
	if p.RoleTitle == "" {
		errs = append(errs, usecase.ValidationError{Field: "role_title", Message: "is required"})
	}
	if p.PhotoURL == "" {
		errs = append(errs, usecase.ValidationError{Field: "photo_url", Message: "is required"})
	}
	return errs
}

func (h *AdminTeamHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	members, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list team members")
		return
	}
	if members == nil {
		members = []*entity.TeamMember{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *AdminTeamHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload teamMemberPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Details: errs})
		return
	}

	m := entity.NewTeamMember(payload.Name, payload.RoleTitle, payload.Bio, payload.PhotoURL, payload.SortOrder)
	m.Published = payload.Published

	if err := h.Repo.Create(r.Context(), m); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create team member")
		return
	}

	invalidate(h.Producer, "team")
	writeJSON(w, http.StatusCreated, m)
}

func (h *AdminTeamHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload teamMemberPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Details: errs})
		return
	}

	m := &entity.TeamMember{
		ID:        chi.URLParam(r, "id"),
		Name:      payload.Name,
		RoleTitle: payload.RoleTitle,
		Bio:       payload.Bio,
		PhotoURL:  payload.PhotoURL,
		SortOrder: payload.SortOrder,
		Published: payload.Published,
	}

	if err := h.Repo.Update(r.Context(), m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "team member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update team member")
		return
	}

	invalidate(h.Producer, "team")
	writeJSON(w, http.StatusOK, m)
}

func (h *AdminTeamHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete team member")
		return
	}

	invalidate(h.Producer, "team")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
