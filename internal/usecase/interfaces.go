package usecase

import (
	"context"
	"io"
	"time"

	"github.com/aaacapital/site-api/internal/entity"
)

// Repositories return (nil, nil) when a row does not exist; errors are
// reserved for real database failures.

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *entity.Lead) error
}

type ResourceRepositoryInterface interface {
	FindPublishedBySlug(ctx context.Context, slug string) (*entity.Resource, error)
	FindByID(ctx context.Context, id string) (*entity.Resource, error)
}

type TokenRepositoryInterface interface {
	Create(ctx context.Context, token *entity.DownloadToken) error
	FindByHash(ctx context.Context, tokenHash string) (*entity.DownloadToken, error)
	// MarkUsed sets used_at only if it is still unset and reports whether
	// this call won. Concurrent presenters of the same token race here;
	// exactly one gets true.
	MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) (bool, error)
}

type DownloadLogRepositoryInterface interface {
	Create(ctx context.Context, dl *entity.ResourceDownload) error
}

// FileFetcher streams an asset from object storage. Implementations
// must bound the fetch and surface a distinguishable timeout error.
type FileFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

type EventProducerInterface interface {
	PublishLeadCaptured(ctx context.Context, payload LeadCapturedPayload) error
	PublishInvalidation(ctx context.Context, views ...string) error
}

// LeadCapturedPayload travels over the queue to the notification worker.
type LeadCapturedPayload struct {
	LeadID       string `json:"lead_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	InterestedIn string `json:"interested_in,omitempty"`
	Message      string `json:"message,omitempty"`
	Source       string `json:"source"`
}
