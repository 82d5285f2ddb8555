package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aaacapital/site-api/internal/entity"
	"github.com/aaacapital/site-api/internal/usecase"
)

type SettingsAdminRepository interface {
	Get(ctx context.Context) (*entity.SiteSettings, error)
	Upsert(ctx context.Context, s *entity.SiteSettings) error
}

type AdminSettingsHandler struct {
	Repo     SettingsAdminRepository
	Producer usecase.EventProducerInterface
}

func NewAdminSettingsHandler(repo SettingsAdminRepository, producer usecase.EventProducerInterface) *AdminSettingsHandler {
	return &AdminSettingsHandler{Repo: repo, Producer: producer}
}

type settingsPayload struct {
	YearsExperience string `json:"years_experience"`
	ClientsCount    string `json:"clients_count"`
	AUM             string `json:"aum"`
	ClaimSettlement string `json:"claim_settlement"`
	AwardsCount     string `json:"awards_count"`
	ShowStats       bool   `json:"show_stats"`
}

func (p settingsPayload) validate() usecase.ValidationErrors {
	var errs usecase.ValidationErrors
	required := map[string]string{
		"years_experience": p.YearsExperience,
		"clients_count":    p.ClientsCount,
		"aum":              p.AUM,
		"claim_settlement": p.ClaimSettlement,
		"awards_count":     p.AwardsCount,
	}
	for field, value := range required {
		if value == "" {
			errs = append(errs, usecase.ValidationError{Field: field, Message: "is required"})
		}
	}
	return errs
}

func (h *AdminSettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Repo.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	if settings == nil {
		settings = entity.DefaultSiteSettings()
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *AdminSettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Details: errs})
		return
	}

	settings := entity.DefaultSiteSettings()
	settings.YearsExperience = payload.YearsExperience
	settings.ClientsCount = payload.ClientsCount
	settings.AUM = payload.AUM
	settings.ClaimSettlement = payload.ClaimSettlement
	settings.AwardsCount = payload.AwardsCount
	settings.ShowStats = payload.ShowStats

	if err := h.Repo.Upsert(r.Context(), settings); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	invalidate(h.Producer, "settings")
	writeJSON(w, http.StatusOK, settings)
}
