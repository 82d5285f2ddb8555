package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/aaacapital/site-api/internal/entity"
)

type DownloadResourceInput struct {
	Slug      string
	RawToken  string
	IP        string
	UserAgent string
}

type DownloadResourceOutput struct {
	FileName string
	Body     io.ReadCloser
}

// DownloadResourceUseCase is the download gate. A presented secret moves
// through: missing -> ErrMissingToken, unknown digest -> ErrTokenNotFound,
// already used -> ErrTokenUsed, past expiry -> ErrTokenExpired. Every
// attempt whose lookup succeeds is written to the audit ledger before the
// token is burned, so rejected replays still leave a trace.
type DownloadResourceUseCase struct {
	TokenRepo    TokenRepositoryInterface
	ResourceRepo ResourceRepositoryInterface
	LogRepo      DownloadLogRepositoryInterface
	Fetcher      FileFetcher

	now func() time.Time
}

func NewDownloadResourceUseCase(
	tokenRepo TokenRepositoryInterface,
	resourceRepo ResourceRepositoryInterface,
	logRepo DownloadLogRepositoryInterface,
	fetcher FileFetcher,
) *DownloadResourceUseCase {
	return &DownloadResourceUseCase{
		TokenRepo:    tokenRepo,
		ResourceRepo: resourceRepo,
		LogRepo:      logRepo,
		Fetcher:      fetcher,
		now:          time.Now,
	}
}

func (uc *DownloadResourceUseCase) Execute(ctx context.Context, input DownloadResourceInput) (*DownloadResourceOutput, error) {
	if input.RawToken == "" {
		return nil, ErrMissingToken
	}

	token, err := uc.TokenRepo.FindByHash(ctx, DigestToken(input.RawToken))
	if err != nil {
		return nil, &UpstreamError{Service: "database", Message: "failed to look up token", Err: err}
	}
	if token == nil {
		return nil, ErrTokenNotFound
	}

	resource, err := uc.ResourceRepo.FindByID(ctx, token.ResourceID)
	if err != nil {
		return nil, &UpstreamError{Service: "database", Message: "failed to load resource", Err: err}
	}
	if resource == nil || resource.Slug != input.Slug {
		// Token exists but does not grant access to this slug.
		return nil, ErrTokenNotFound
	}

	// The access attempt itself is the auditable event, so the row is
	// written before the validity checks below can reject it.
	audit := entity.NewResourceDownload(token.ResourceID, token.LeadID, input.IP, input.UserAgent)
	if err := uc.LogRepo.Create(ctx, audit); err != nil {
		return nil, &UpstreamError{Service: "database", Message: "failed to record download", Err: err}
	}

	if token.IsUsed() {
		return nil, ErrTokenUsed
	}
	if token.IsExpired(uc.now()) {
		return nil, ErrTokenExpired
	}

	// Burn the token before fetching content. A concurrent request with
	// the same secret loses this conditional update and gets 410; a
	// failed fetch below leaves the token burned, which is the safer
	// trade against an indefinitely reusable credential.
	won, err := uc.TokenRepo.MarkUsed(ctx, token.ID, uc.now())
	if err != nil {
		return nil, &UpstreamError{Service: "database", Message: "failed to mark token used", Err: err}
	}
	if !won {
		return nil, ErrTokenUsed
	}

	body, err := uc.Fetcher.Fetch(ctx, resource.PDFURL)
	if err != nil {
		return nil, &UpstreamError{
			Service: "storage",
			Message: "failed to fetch document",
			Timeout: errors.Is(err, context.DeadlineExceeded),
			Err:     err,
		}
	}

	return &DownloadResourceOutput{
		FileName: resource.Slug + ".pdf",
		Body:     body,
	}, nil
}
