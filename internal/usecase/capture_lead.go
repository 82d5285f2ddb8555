package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/aaacapital/site-api/internal/entity"
)

// TokenTTL is the window between issuing a download token and its expiry.
const TokenTTL = 10 * time.Minute

type ResourceLeadInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	InterestedIn string `json:"interested_in,omitempty"`
}

type ResourceLeadOutput struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// CaptureLeadUseCase records a prospect against a published resource and
// mints a single-use download token. The raw secret goes back to the
// caller exactly once; only its SHA-256 digest is persisted.
type CaptureLeadUseCase struct {
	LeadRepo     LeadRepositoryInterface
	ResourceRepo ResourceRepositoryInterface
	TokenRepo    TokenRepositoryInterface

	now func() time.Time
}

func NewCaptureLeadUseCase(
	leadRepo LeadRepositoryInterface,
	resourceRepo ResourceRepositoryInterface,
	tokenRepo TokenRepositoryInterface,
) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{
		LeadRepo:     leadRepo,
		ResourceRepo: resourceRepo,
		TokenRepo:    tokenRepo,
		now:          time.Now,
	}
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, slug string, input ResourceLeadInput) (*ResourceLeadOutput, error) {
	if errs := ValidateResourceLeadInput(input); len(errs) > 0 {
		return nil, errs
	}

	resource, err := uc.ResourceRepo.FindPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, &UpstreamError{Service: "database", Message: "failed to look up resource", Err: err}
	}
	if resource == nil {
		return nil, ErrResourceNotFound
	}

	interestedIn := input.InterestedIn
	if interestedIn == "" {
		interestedIn = "Both"
	}

	lead := entity.NewLead(input.Name, input.Email, input.Phone, input.City, interestedIn, entity.LeadSourceResourceDownload)
	lead.ResourceID = resource.ID
	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		return nil, &UpstreamError{Service: "database", Message: "failed to save lead", Err: err}
	}

	rawToken, tokenHash, err := generateSecret()
	if err != nil {
		return nil, &UpstreamError{Service: "crypto", Message: "failed to generate token", Err: err}
	}

	token := entity.NewDownloadToken(tokenHash, resource.ID, lead.ID, uc.now().Add(TokenTTL))
	if err := uc.TokenRepo.Create(ctx, token); err != nil {
		return nil, &UpstreamError{Service: "database", Message: "failed to save token", Err: err}
	}

	return &ResourceLeadOutput{Success: true, Token: rawToken}, nil
}

// generateSecret returns a 64-char hex secret (256 bits of entropy) and
// the hex SHA-256 digest of that secret.
func generateSecret() (raw string, digest string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("reading random bytes: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, DigestToken(raw), nil
}

// DigestToken maps a presented secret to its stored form.
func DigestToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
