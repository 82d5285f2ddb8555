package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/aaacapital/site-api/internal/usecase"
)

type errorResponse struct {
	Error   string                    `json:"error"`
	Details []usecase.ValidationError `json:"details,omitempty"`
	Hint    string                    `json:"hint,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeUseCaseError translates the usecase error taxonomy to HTTP.
// Upstream failures are logged with detail server-side and reported to
// the caller as a generic, retryable condition.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var validationErrs usecase.ValidationErrors
	if errors.As(err, &validationErrs) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Details: validationErrs})
		return
	}

	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, statusForDomainError(domainErr), domainErr.Message)
		return
	}

	var upstreamErr *usecase.UpstreamError
	if errors.As(err, &upstreamErr) {
		log.Printf("[upstream] %s: %v", upstreamErr.Service, upstreamErr.Err)
		hint := "please try again"
		if upstreamErr.Timeout {
			hint = "the request timed out, please try again"
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: upstreamErr.Message, Hint: hint})
		return
	}

	log.Printf("[handler] unexpected error: %v", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func statusForDomainError(err *usecase.DomainError) int {
	switch err {
	case usecase.ErrMissingToken:
		return http.StatusUnauthorized
	case usecase.ErrResourceNotFound, usecase.ErrPostNotFound, usecase.ErrTokenNotFound:
		return http.StatusNotFound
	case usecase.ErrTokenExpired, usecase.ErrTokenUsed:
		return http.StatusGone
	default:
		return http.StatusBadRequest
	}
}

// invalidate publishes cache-invalidation events fire-and-forget; a dead
// broker only costs cache freshness, never the admin write.
func invalidate(producer usecase.EventProducerInterface, views ...string) {
	if producer == nil {
		return
	}
	if err := producer.PublishInvalidation(context.Background(), views...); err != nil {
		log.Printf("[cache] failed to publish invalidation: %v", err)
	}
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.Index(xff, ","); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
