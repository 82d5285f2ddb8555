package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const SessionTTL = 12 * time.Hour

var (
	ErrBadCredentials = errors.New("invalid email or password")
	ErrNotAllowed     = errors.New("email is not on the admin allowlist")
	ErrInvalidSession = errors.New("invalid session token")
)

// SessionManager mints and verifies the JWT session cookies that gate
// the admin area. Access control is an env allowlist of admin emails
// plus a single bcrypt-hashed admin password.
type SessionManager struct {
	secret       []byte
	passwordHash string
	allowlist    map[string]bool
}

func NewSessionManager(secret, passwordHash, allowlistCSV string) *SessionManager {
	allowlist := make(map[string]bool)
	for _, email := range strings.Split(allowlistCSV, ",") {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			allowlist[email] = true
		}
	}
	return &SessionManager{
		secret:       []byte(secret),
		passwordHash: passwordHash,
		allowlist:    allowlist,
	}
}

func (s *SessionManager) Allowed(email string) bool {
	return s.allowlist[strings.ToLower(strings.TrimSpace(email))]
}

// Login checks the allowlist and password, then mints a session token.
func (s *SessionManager) Login(email, password string) (string, error) {
	if !s.Allowed(email) {
		return "", ErrNotAllowed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrBadCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strings.ToLower(strings.TrimSpace(email)),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		Issuer:    "site-api",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses a session token and returns the admin email. The
// allowlist is rechecked so revoking an email takes effect before the
// token expires.
func (s *SessionManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidSession
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidSession
	}
	if !s.Allowed(claims.Subject) {
		return "", ErrNotAllowed
	}

	return claims.Subject, nil
}
