package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aaacapital/site-api/internal/entity"
	"github.com/aaacapital/site-api/internal/infra/http/middleware"
	"github.com/aaacapital/site-api/internal/usecase"
)

type ContactHandler struct {
	UC          *usecase.SubmitContactUseCase
	rateLimiter *RateLimiter
}

func NewContactHandler(uc *usecase.SubmitContactUseCase) *ContactHandler {
	return &ContactHandler{
		UC:          uc,
		rateLimiter: NewRateLimiter(10, time.Minute),
	}
}

func (h *ContactHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "too many requests, please try again later")
		return
	}

	var input usecase.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	output, err := h.UC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadCaptured(entity.LeadSourceContactForm)
	writeJSON(w, http.StatusOK, output)
}
