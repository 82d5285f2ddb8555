package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aaacapital/site-api/internal/entity"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) FindPublishedBySlug(ctx context.Context, slug string) (*entity.Resource, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Resource), args.Error(1)
}

func (m *MockResourceRepository) FindByID(ctx context.Context, id string) (*entity.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Resource), args.Error(1)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(ctx context.Context, token *entity.DownloadToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.DownloadToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DownloadToken), args.Error(1)
}

func (m *MockTokenRepository) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) (bool, error) {
	args := m.Called(ctx, tokenID, usedAt)
	return args.Bool(0), args.Error(1)
}

type MockDownloadLogRepository struct {
	mock.Mock
}

func (m *MockDownloadLogRepository) Create(ctx context.Context, dl *entity.ResourceDownload) error {
	args := m.Called(ctx, dl)
	return args.Error(0)
}

type MockFileFetcher struct {
	mock.Mock
}

func (m *MockFileFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) PublishLeadCaptured(ctx context.Context, payload LeadCapturedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockEventProducer) PublishInvalidation(ctx context.Context, views ...string) error {
	args := m.Called(ctx, views)
	return args.Error(0)
}

// memoryTokenRepository backs the concurrency tests: MarkUsed has the
// same winner-takes-all semantics as the SQL conditional update.
type memoryTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]*entity.DownloadToken
}

func newMemoryTokenRepository() *memoryTokenRepository {
	return &memoryTokenRepository{tokens: make(map[string]*entity.DownloadToken)}
}

func (r *memoryTokenRepository) Create(ctx context.Context, token *entity.DownloadToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *token
	r.tokens[token.ID] = &cp
	return nil
}

func (r *memoryTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.DownloadToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryTokenRepository) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenID]
	if !ok || t.UsedAt != nil {
		return false, nil
	}
	t.UsedAt = &usedAt
	return true, nil
}
