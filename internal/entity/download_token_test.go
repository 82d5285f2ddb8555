package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDownloadTokenValidity(t *testing.T) {
	now := time.Now()
	token := NewDownloadToken("abc123", "res-1", "lead-1", now.Add(10*time.Minute))

	assert.NotEmpty(t, token.ID)
	assert.False(t, token.IsUsed())
	assert.False(t, token.IsExpired(now))
	assert.False(t, token.IsExpired(now.Add(9*time.Minute)))

	// Expiry boundary is exclusive: at expires_at the token is dead.
	assert.True(t, token.IsExpired(now.Add(10*time.Minute)))
	assert.True(t, token.IsExpired(now.Add(11*time.Minute)))

	usedAt := now.Add(time.Minute)
	token.UsedAt = &usedAt
	assert.True(t, token.IsUsed())
}
