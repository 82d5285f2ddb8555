package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/aaacapital/site-api/internal/entity"
	"github.com/aaacapital/site-api/internal/usecase"
)

type stubResourceRepo struct {
	resources map[string]*entity.Resource
}

func (s *stubResourceRepo) FindPublishedBySlug(ctx context.Context, slug string) (*entity.Resource, error) {
	res, ok := s.resources[slug]
	if !ok || !res.Published {
		return nil, nil
	}
	return res, nil
}

func (s *stubResourceRepo) FindByID(ctx context.Context, id string) (*entity.Resource, error) {
	for _, res := range s.resources {
		if res.ID == id {
			return res, nil
		}
	}
	return nil, nil
}

type stubLeadRepo struct {
	mu    sync.Mutex
	leads []*entity.Lead
}

func (s *stubLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append(s.leads, lead)
	return nil
}

type stubTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*entity.DownloadToken
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[string]*entity.DownloadToken)}
}

func (s *stubTokenRepo) Create(ctx context.Context, token *entity.DownloadToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *token
	s.tokens[token.ID] = &cp
	return nil
}

func (s *stubTokenRepo) FindByHash(ctx context.Context, tokenHash string) (*entity.DownloadToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens {
		if t.TokenHash == tokenHash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubTokenRepo) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[tokenID]
	if !ok || t.UsedAt != nil {
		return false, nil
	}
	t.UsedAt = &usedAt
	return true, nil
}

type stubLogRepo struct {
	mu   sync.Mutex
	rows []*entity.ResourceDownload
}

func (s *stubLogRepo) Create(ctx context.Context, dl *entity.ResourceDownload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, dl)
	return nil
}

type stubFetcher struct {
	payload string
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.payload)), nil
}

func gatedDownloadRouter(t *testing.T) (*chi.Mux, *stubLogRepo) {
	t.Helper()

	resource := entity.NewResource("2026 Tax Planning Guide", "tax-guide-2026", "Save tax the smart way", "", "https://res.cloudinary.com/demo/tax-guide.pdf", "resources/tax-guide-2026")
	resource.Published = true

	resourceRepo := &stubResourceRepo{resources: map[string]*entity.Resource{"tax-guide-2026": resource}}
	leadRepo := &stubLeadRepo{}
	tokenRepo := newStubTokenRepo()
	logRepo := &stubLogRepo{}

	captureUC := usecase.NewCaptureLeadUseCase(leadRepo, resourceRepo, tokenRepo)
	downloadUC := usecase.NewDownloadResourceUseCase(tokenRepo, resourceRepo, logRepo, &stubFetcher{payload: "%PDF-1.4"})
	handler := NewResourceHandler(captureUC, downloadUC)

	r := chi.NewRouter()
	r.Post("/resource/{slug}/lead", handler.HandleLead)
	r.Get("/resource/{slug}/download", handler.HandleDownload)
	return r, logRepo
}

func submitLead(t *testing.T, router http.Handler, slug string, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/resource/"+slug+"/lead", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func janeDoe() map[string]string {
	return map[string]string{
		"name":  "Jane Doe",
		"email": "jane@x.com",
		"phone": "9999999999",
		"city":  "Delhi",
	}
}

func TestGatedDownloadFlow(t *testing.T) {
	router, logRepo := gatedDownloadRouter(t)

	// Lead submission mints a 64-char hex token.
	rec := submitLead(t, router, "tax-guide-2026", janeDoe())
	assert.Equal(t, http.StatusOK, rec.Code)

	var leadResp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leadResp))
	assert.True(t, leadResp.Success)
	assert.Regexp(t, `^[0-9a-f]{64}$`, leadResp.Token)

	// The token fetches the PDF once...
	req := httptest.NewRequest(http.MethodGet, "/resource/tax-guide-2026/download?token="+leadResp.Token, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "tax-guide-2026.pdf")
	assert.Contains(t, rec.Header().Get("Cache-Control"), "no-store")
	assert.Equal(t, "%PDF-1.4", rec.Body.String())

	// ...and the immediate replay is gone.
	req = httptest.NewRequest(http.MethodGet, "/resource/tax-guide-2026/download?token="+leadResp.Token, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusGone, rec.Code)

	// Both attempts were audited.
	assert.Len(t, logRepo.rows, 2)
}

func TestLeadValidationFailure(t *testing.T) {
	router, _ := gatedDownloadRouter(t)

	payload := janeDoe()
	payload["email"] = "not-an-email"

	rec := submitLead(t, router, "tax-guide-2026", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error   string `json:"error"`
		Details []struct {
			Field string `json:"field"`
		} `json:"details"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "email", resp.Details[0].Field)
}

func TestLeadUnknownResource(t *testing.T) {
	router, _ := gatedDownloadRouter(t)

	rec := submitLead(t, router, "no-such-guide", janeDoe())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadStatusCodes(t *testing.T) {
	router, _ := gatedDownloadRouter(t)

	// Missing token short-circuits to 401.
	req := httptest.NewRequest(http.MethodGet, "/resource/tax-guide-2026/download", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown token is 404 with the same response shape as any miss.
	req = httptest.NewRequest(http.MethodGet, "/resource/tax-guide-2026/download?token="+strings.Repeat("ab", 32), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestConcurrentDownloadsServeOnce(t *testing.T) {
	router, _ := gatedDownloadRouter(t)

	rec := submitLead(t, router, "tax-guide-2026", janeDoe())
	var leadResp struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leadResp))

	var wg sync.WaitGroup
	codes := make(chan int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/resource/tax-guide-2026/download?token="+leadResp.Token, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			codes <- rec.Code
		}()
	}
	wg.Wait()
	close(codes)

	got := []int{}
	for code := range codes {
		got = append(got, code)
	}
	assert.ElementsMatch(t, []int{http.StatusOK, http.StatusGone}, got)
}
