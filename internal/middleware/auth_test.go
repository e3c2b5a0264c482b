package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-api/internal/domain"
	"notes-api/pkg/errors"
	"notes-api/pkg/logger"
)

type stubValidator struct {
	claims *domain.SessionClaims
	err    error
	seen   string
}

func (s *stubValidator) Validate(token string) (*domain.SessionClaims, error) {
	s.seen = token
	return s.claims, s.err
}

func TestAuth(t *testing.T) {
	validClaims := &domain.SessionClaims{UserID: "user-1", Email: "a@b.com"}

	tests := []struct {
		name       string
		authHeader string
		validator  *stubValidator
		wantStatus int
		wantType   errors.ErrorType
	}{
		{
			name:       "missing header",
			authHeader: "",
			validator:  &stubValidator{claims: validClaims},
			wantStatus: http.StatusUnauthorized,
			wantType:   errors.ErrorTypeAuthentication,
		},
		{
			name:       "no bearer scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			validator:  &stubValidator{claims: validClaims},
			wantStatus: http.StatusUnauthorized,
			wantType:   errors.ErrorTypeAuthentication,
		},
		{
			name:       "empty bearer token",
			authHeader: "Bearer ",
			validator:  &stubValidator{claims: validClaims},
			wantStatus: http.StatusUnauthorized,
			wantType:   errors.ErrorTypeAuthentication,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer not-a-session",
			validator:  &stubValidator{err: errors.NewAuthorizationError("Invalid or expired token")},
			wantStatus: http.StatusForbidden,
			wantType:   errors.ErrorTypeAuthorization,
		},
		{
			name:       "valid token",
			authHeader: "Bearer good-session",
			validator:  &stubValidator{claims: validClaims},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenClaims *domain.SessionClaims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenClaims = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := Auth(tt.validator, logger.NewNop())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, seenClaims)
				assert.Equal(t, "user-1", seenClaims.UserID)
				assert.Equal(t, "good-session", tt.validator.seen)
				return
			}

			// The handler must not run on rejection.
			assert.Nil(t, seenClaims)

			var body errors.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantType, body.Error.Type)
		})
	}
}

// The two rejection paths must stay distinguishable so clients can tell a
// lost credential from a stale one.
func TestAuthMissingVersusInvalidAreDistinct(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := Auth(&stubValidator{err: errors.NewAuthorizationError("bad")}, logger.NewNop())(next)

	missing := httptest.NewRecorder()
	handler.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/", nil))

	invalid := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tampered")
	handler.ServeHTTP(invalid, req)

	assert.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.Equal(t, http.StatusForbidden, invalid.Code)
	assert.NotEqual(t, missing.Code, invalid.Code)
}
