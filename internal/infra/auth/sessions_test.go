package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func testManager(t *testing.T, allowlist string) *SessionManager {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	assert.NoError(t, err)
	return NewSessionManager("test-secret", string(hash), allowlist)
}

func TestLoginAndVerifyRoundTrip(t *testing.T) {
	m := testManager(t, "admin@aaacapital.in, ops@aaacapital.in")

	token, err := m.Login("Admin@aaacapital.in", "correct horse")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	email, err := m.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin@aaacapital.in", email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	m := testManager(t, "admin@aaacapital.in")

	_, err := m.Login("admin@aaacapital.in", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLoginRejectsUnlistedEmail(t *testing.T) {
	m := testManager(t, "admin@aaacapital.in")

	_, err := m.Login("intruder@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := testManager(t, "admin@aaacapital.in")

	_, err := m.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifyRechecksAllowlist(t *testing.T) {
	m := testManager(t, "admin@aaacapital.in")
	token, err := m.Login("admin@aaacapital.in", "correct horse")
	assert.NoError(t, err)

	// Same secret, email since removed from the allowlist: the still
	// unexpired token must stop working.
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	revoked := NewSessionManager("test-secret", string(hash), "someoneelse@aaacapital.in")

	_, err = revoked.Verify(token)
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	m := testManager(t, "admin@aaacapital.in")
	token, err := m.Login("admin@aaacapital.in", "correct horse")
	assert.NoError(t, err)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	other := NewSessionManager("different-secret", string(hash), "admin@aaacapital.in")

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
