package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aaacapital/site-api/internal/usecase"
)

func contactFixture() (*ContactHandler, *stubLeadRepo, *recordingProducer) {
	leadRepo := &stubLeadRepo{}
	producer := &recordingProducer{}
	uc := usecase.NewSubmitContactUseCase(leadRepo, producer)
	return NewContactHandler(uc), leadRepo, producer
}

func TestContactSubmission(t *testing.T) {
	handler, leadRepo, _ := contactFixture()

	rec := httptest.NewRecorder()
	handler.Handle(rec, jsonRequest(http.MethodPost, "/contact", map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@x.com",
		"message": "I would like a portfolio review.",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, leadRepo.leads, 1)
	assert.Equal(t, "I would like a portfolio review.", leadRepo.leads[0].Message)
}

func TestContactRejectsInvalidJSON(t *testing.T) {
	handler, _, _ := contactFixture()

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("{oops"))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactRateLimitsPerIP(t *testing.T) {
	handler, _, _ := contactFixture()

	var last int
	for i := 0; i < 11; i++ {
		rec := httptest.NewRecorder()
		handler.Handle(rec, jsonRequest(http.MethodPost, "/contact", map[string]string{
			"name":    "Jane Doe",
			"email":   "jane@x.com",
			"message": "I would like a portfolio review.",
		}))
		last = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}
