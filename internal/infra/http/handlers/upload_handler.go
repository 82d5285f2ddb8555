package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aaacapital/site-api/internal/infra/storage/cloudinary"
)

// UploadHandler signs Cloudinary upload parameters for the admin
// frontend's direct-to-storage uploads. The API secret never leaves the
// server.
type UploadHandler struct {
	Storage *cloudinary.Client
}

func NewUploadHandler(storage *cloudinary.Client) *UploadHandler {
	return &UploadHandler{Storage: storage}
}

type signRequest struct {
	ParamsToSign map[string]string `json:"params_to_sign"`
}

func (h *UploadHandler) HandleSign(w http.ResponseWriter, r *http.Request) {
	var req signRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.ParamsToSign) == 0 {
		writeError(w, http.StatusBadRequest, "params_to_sign is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"signature": h.Storage.SignParams(req.ParamsToSign),
	})
}
