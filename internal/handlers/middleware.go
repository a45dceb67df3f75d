package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"spello/internal/models"
	"spello/internal/security"
	"spello/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	limiter     *security.RateLimiter
	csrf        *security.CSRFGenerator
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, limiter *security.RateLimiter, csrf *security.CSRFGenerator) *Middleware {
	return &Middleware{
		authService: authService,
		limiter:     limiter,
		csrf:        csrf,
	}
}

// RequireAuth authenticates the request via session cookie or bearer token
// and puts the user in the request context. Cookie-authenticated mutations
// must also carry the session's CSRF token
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, sessionID := m.authenticate(r)
		if user == nil {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		if sessionID != "" && isMutating(r.Method) {
			if !m.csrf.ValidateToken(sessionID, r.Header.Get("X-CSRF-Token")) {
				respondError(w, http.StatusForbidden, "invalid csrf token")
				return
			}
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// RequireAdmin is RequireAuth plus an admin check
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil || !user.IsAdmin {
			respondError(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	})
}

// authenticate returns the user plus the session ID when the request came in
// on a cookie; bearer-token requests return an empty session ID
func (m *Middleware) authenticate(r *http.Request) (*models.User, string) {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token := strings.TrimPrefix(header, "Bearer ")
		if user, err := m.authService.ValidateToken(token); err == nil {
			return user, ""
		}
	}

	if cookie, err := r.Cookie("session_id"); err == nil && cookie.Value != "" {
		if user, err := m.authService.ValidateSession(cookie.Value); err == nil {
			return user, cookie.Value
		}
	}

	return nil, ""
}

// RateLimit rejects clients that exceed the per-IP request budget
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.GetClientIP(r)) {
			respondError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
