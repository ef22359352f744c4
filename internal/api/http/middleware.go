package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/logger"
	"propertydesk-backend/internal/security"
)

type contextKey string

const scopeKey contextKey = "scope"

// scopeFrom extracts the authenticated scope placed by AuthMiddleware.
func scopeFrom(r *http.Request) (domain.Scope, bool) {
	scope, ok := r.Context().Value(scopeKey).(domain.Scope)
	return scope, ok
}

// AuthMiddleware validates the bearer token and threads the caller's scope
// through the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, domain.ErrUnauthorized)
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, domain.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), scopeKey, claims.Scope())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggingMiddleware emits one structured line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request handled",
			"method", r.Method, "path", r.URL.Path,
			"status", rec.status, "duration_ms", time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
