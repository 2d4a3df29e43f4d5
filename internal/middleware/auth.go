package middleware

import (
	"context"
	"net/http"
	"strings"

	"staffing-awards/internal/auth"
)

type contextKey string

const AdminKey contextKey = "is_admin"

// AdminMiddleware guards the moderation endpoints. It accepts either a
// session token from /api/auth/admin/login or the raw passcode, so scripts
// and the dashboard can share the same endpoints.
type AdminMiddleware struct {
	authService *auth.Service
}

// NewAdminMiddleware creates a new admin middleware
func NewAdminMiddleware(authService *auth.Service) *AdminMiddleware {
	return &AdminMiddleware{
		authService: authService,
	}
}

// RequireAdmin rejects requests that don't carry valid admin credentials
func (m *AdminMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.authorized(r) {
			respondWithError(w, http.StatusUnauthorized, "Admin credentials required")
			return
		}

		ctx := context.WithValue(r.Context(), AdminKey, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAdmin marks the request as admin when valid credentials are
// present but lets everything through
func (m *AdminMiddleware) OptionalAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.authorized(r) {
			ctx := context.WithValue(r.Context(), AdminKey, true)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// authorized checks the Authorization and X-Admin-Passcode headers. A Bearer
// value is tried as a JWT first, then as a raw passcode.
func (m *AdminMiddleware) authorized(r *http.Request) bool {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if _, err := m.authService.ValidateToken(parts[1]); err == nil {
				return true
			}
			if err := m.authService.VerifyPasscode(parts[1]); err == nil {
				return true
			}
		}
	}

	if passcode := r.Header.Get("X-Admin-Passcode"); passcode != "" {
		if err := m.authService.VerifyPasscode(passcode); err == nil {
			return true
		}
	}

	return false
}

// IsAdmin reports whether the request carries admin credentials
func IsAdmin(r *http.Request) bool {
	isAdmin, ok := r.Context().Value(AdminKey).(bool)
	return ok && isAdmin
}

// Helper function to respond with JSON error
func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
