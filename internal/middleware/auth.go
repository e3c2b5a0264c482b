package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"notes-api/internal/domain"
	"notes-api/pkg/errors"
	"notes-api/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// UserContextKey is the key for the decoded session claims in context
	UserContextKey ContextKey = "user"
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// SessionValidator validates a presented session token. Implemented by
// internal/session.
type SessionValidator interface {
	Validate(token string) (*domain.SessionClaims, error)
}

// Auth is the access guard: it requires a valid bearer session token before
// the request reaches any owner-scoped handler. A missing credential is
// rejected as 401; a presented-but-invalid or expired one as 403. The check
// is a pure signature/expiry test, no store access.
func Auth(sessions SessionValidator, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Access token required"), logger)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader || token == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Access token required"), logger)
				return
			}

			claims, err := sessions.Validate(token)
			if err != nil {
				logger.WithError(err).Debug("Session token rejected")
				writeErrorResponse(w, errors.NewAuthorizationError("Invalid or expired token"), logger)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the session claims the access guard attached,
// or nil when the request did not pass through it.
func ClaimsFromContext(ctx context.Context) *domain.SessionClaims {
	claims, _ := ctx.Value(UserContextKey).(*domain.SessionClaims)
	return claims
}

// writeErrorResponse writes a JSON error envelope to the client
func writeErrorResponse(w http.ResponseWriter, appErr *errors.AppError, logger *logger.Logger) {
	logger.WithError(appErr).Debug("Request rejected")

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.WithError(err).Error("Failed to encode error response")
	}
}
