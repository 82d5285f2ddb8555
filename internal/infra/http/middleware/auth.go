package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aaacapital/site-api/internal/infra/auth"
)

// SessionCookieName is the cookie the admin frontend stores its JWT in.
const SessionCookieName = "admin_session"

type contextKey string

const adminEmailKey contextKey = "admin_email"

// AdminEmail returns the authenticated admin's email, empty outside the
// admin middleware.
func AdminEmail(ctx context.Context) string {
	email, _ := ctx.Value(adminEmailKey).(string)
	return email
}

// AdminOnly gates a route subtree behind a valid session token whose
// email is still on the allowlist. Missing/invalid token is 401; a valid
// token for a since-removed email is 403.
func AdminOnly(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			email, err := sessions.Verify(token)
			if err != nil {
				if errors.Is(err, auth.ErrNotAllowed) {
					writeAuthError(w, http.StatusForbidden, "not authorized")
					return
				}
				writeAuthError(w, http.StatusUnauthorized, "invalid session")
				return
			}

			ctx := context.WithValue(r.Context(), adminEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
