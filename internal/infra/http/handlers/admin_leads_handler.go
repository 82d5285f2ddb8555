package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aaacapital/site-api/internal/entity"
)

type LeadLister interface {
	List(ctx context.Context, limit int) ([]*entity.Lead, error)
}

type DownloadLister interface {
	ListRecent(ctx context.Context, limit int) ([]*entity.ResourceDownload, error)
}

// AdminLeadHandler exposes the captured-lead and download-audit listings
// in the admin panel. Read-only: leads and audit rows are immutable.
type AdminLeadHandler struct {
	Leads     LeadLister
	Downloads DownloadLister
}

func NewAdminLeadHandler(leads LeadLister, downloads DownloadLister) *AdminLeadHandler {
	return &AdminLeadHandler{Leads: leads, Downloads: downloads}
}

func (h *AdminLeadHandler) HandleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Leads.List(r.Context(), queryLimit(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *AdminLeadHandler) HandleListDownloads(w http.ResponseWriter, r *http.Request) {
	downloads, err := h.Downloads.ListRecent(r.Context(), queryLimit(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list downloads")
		return
	}
	if downloads == nil {
		downloads = []*entity.ResourceDownload{}
	}
	writeJSON(w, http.StatusOK, downloads)
}

func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 1000 {
		return 200
	}
	return limit
}
