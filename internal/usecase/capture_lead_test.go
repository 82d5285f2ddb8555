package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aaacapital/site-api/internal/entity"
)

var hexToken = regexp.MustCompile(`^[0-9a-f]{64}$`)

func publishedResource() *entity.Resource {
	res := entity.NewResource("2026 Tax Planning Guide", "tax-guide-2026", "Save tax the smart way", "", "https://res.cloudinary.com/demo/tax-guide.pdf", "resources/tax-guide-2026")
	res.Published = true
	return res
}

func TestCaptureLeadSuccess(t *testing.T) {
	ctx := context.Background()
	resource := publishedResource()

	leadRepo := new(MockLeadRepository)
	resourceRepo := new(MockResourceRepository)
	tokenRepo := new(MockTokenRepository)

	resourceRepo.On("FindPublishedBySlug", ctx, "tax-guide-2026").Return(resource, nil)

	var savedLead *entity.Lead
	leadRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		savedLead = args.Get(1).(*entity.Lead)
	}).Return(nil)

	var savedToken *entity.DownloadToken
	tokenRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		savedToken = args.Get(1).(*entity.DownloadToken)
	}).Return(nil)

	uc := NewCaptureLeadUseCase(leadRepo, resourceRepo, tokenRepo)
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return issuedAt }

	output, err := uc.Execute(ctx, "tax-guide-2026", validResourceLeadInput())

	assert.NoError(t, err)
	assert.True(t, output.Success)
	assert.Regexp(t, hexToken, output.Token)

	assert.Equal(t, entity.LeadSourceResourceDownload, savedLead.Source)
	assert.Equal(t, resource.ID, savedLead.ResourceID)
	assert.Equal(t, "Both", savedLead.InterestedIn)

	// Only the digest is persisted, and digesting the raw secret must
	// reproduce it.
	assert.NotEqual(t, output.Token, savedToken.TokenHash)
	assert.Equal(t, DigestToken(output.Token), savedToken.TokenHash)
	assert.Equal(t, resource.ID, savedToken.ResourceID)
	assert.Equal(t, savedLead.ID, savedToken.LeadID)
	assert.Equal(t, issuedAt.Add(10*time.Minute), savedToken.ExpiresAt)
}

func TestCaptureLeadKeepsDeclaredInterest(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	resourceRepo := new(MockResourceRepository)
	tokenRepo := new(MockTokenRepository)

	resourceRepo.On("FindPublishedBySlug", ctx, "tax-guide-2026").Return(publishedResource(), nil)

	var savedLead *entity.Lead
	leadRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		savedLead = args.Get(1).(*entity.Lead)
	}).Return(nil)
	tokenRepo.On("Create", ctx, mock.Anything).Return(nil)

	input := validResourceLeadInput()
	input.InterestedIn = "Insurance"

	uc := NewCaptureLeadUseCase(leadRepo, resourceRepo, tokenRepo)
	_, err := uc.Execute(ctx, "tax-guide-2026", input)

	assert.NoError(t, err)
	assert.Equal(t, "Insurance", savedLead.InterestedIn)
}

func TestCaptureLeadValidationFailure(t *testing.T) {
	uc := NewCaptureLeadUseCase(new(MockLeadRepository), new(MockResourceRepository), new(MockTokenRepository))

	input := validResourceLeadInput()
	input.Email = "nope"

	_, err := uc.Execute(context.Background(), "tax-guide-2026", input)

	var validationErrs ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "email", validationErrs[0].Field)
}

func TestCaptureLeadUnknownResource(t *testing.T) {
	ctx := context.Background()
	resourceRepo := new(MockResourceRepository)
	resourceRepo.On("FindPublishedBySlug", ctx, "no-such-guide").Return(nil, nil)

	uc := NewCaptureLeadUseCase(new(MockLeadRepository), resourceRepo, new(MockTokenRepository))
	_, err := uc.Execute(ctx, "no-such-guide", validResourceLeadInput())

	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestCaptureLeadRepositoryFailure(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	resourceRepo := new(MockResourceRepository)

	resourceRepo.On("FindPublishedBySlug", ctx, "tax-guide-2026").Return(publishedResource(), nil)
	leadRepo.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

	uc := NewCaptureLeadUseCase(leadRepo, resourceRepo, new(MockTokenRepository))
	_, err := uc.Execute(ctx, "tax-guide-2026", validResourceLeadInput())

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "database", upstreamErr.Service)
}

func TestGeneratedSecretsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		raw, digest, err := generateSecret()
		assert.NoError(t, err)
		assert.Regexp(t, hexToken, raw)
		assert.Equal(t, DigestToken(raw), digest)
		assert.False(t, seen[raw])
		seen[raw] = true
	}
}
