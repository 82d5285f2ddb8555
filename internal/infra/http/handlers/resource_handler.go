package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aaacapital/site-api/internal/entity"
	"github.com/aaacapital/site-api/internal/infra/http/middleware"
	"github.com/aaacapital/site-api/internal/usecase"
)

// ResourceHandler hosts the gated lead-magnet flow: lead submission
// mints a token, download presents it.
type ResourceHandler struct {
	CaptureUC   *usecase.CaptureLeadUseCase
	DownloadUC  *usecase.DownloadResourceUseCase
	rateLimiter *RateLimiter
}

func NewResourceHandler(captureUC *usecase.CaptureLeadUseCase, downloadUC *usecase.DownloadResourceUseCase) *ResourceHandler {
	return &ResourceHandler{
		CaptureUC:   captureUC,
		DownloadUC:  downloadUC,
		rateLimiter: NewRateLimiter(10, time.Minute),
	}
}

func (h *ResourceHandler) HandleLead(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "too many requests, please try again later")
		return
	}

	var input usecase.ResourceLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	output, err := h.CaptureUC.Execute(r.Context(), chi.URLParam(r, "slug"), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadCaptured(entity.LeadSourceResourceDownload)
	writeJSON(w, http.StatusOK, output)
}

func (h *ResourceHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	input := usecase.DownloadResourceInput{
		Slug:      chi.URLParam(r, "slug"),
		RawToken:  r.URL.Query().Get("token"),
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
	}

	output, err := h.DownloadUC.Execute(r.Context(), input)
	if err != nil {
		middleware.RecordDownloadRejected(rejectionReason(err))
		writeUseCaseError(w, err)
		return
	}
	defer output.Body.Close()

	middleware.RecordDownloadServed()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename=%q`, output.FileName))
	w.Header().Set("Cache-Control", "no-store, max-age=0")

	if _, err := io.Copy(w, output.Body); err != nil {
		// Headers are gone; all we can do is note the broken stream.
		log.Printf("[download] streaming %s aborted: %v", output.FileName, err)
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, usecase.ErrMissingToken):
		return "missing"
	case errors.Is(err, usecase.ErrTokenNotFound):
		return "not_found"
	case errors.Is(err, usecase.ErrTokenExpired):
		return "expired"
	case errors.Is(err, usecase.ErrTokenUsed):
		return "used"
	default:
		return "upstream"
	}
}
