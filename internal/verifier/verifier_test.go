package verifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-api/pkg/errors"
	"notes-api/pkg/logger"
)

const testClientID = "test-client-id.apps.googleusercontent.com"

func newTestVerifier(t *testing.T, handler http.HandlerFunc) (*Verifier, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	v := NewVerifier(testClientID, logger.NewNop())
	v.tokenInfoURL = server.URL
	return v, server
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType errors.ErrorType
		wantSub  string
	}{
		{
			name:    "valid token",
			status:  http.StatusOK,
			body:    `{"aud":"` + testClientID + `","sub":"g-123","email":"a@b.com","name":"Ada","picture":"https://example.com/a.png","email_verified":"true"}`,
			wantSub: "g-123",
		},
		{
			name:     "provider rejects token",
			status:   http.StatusBadRequest,
			body:     `{"error":"invalid_token"}`,
			wantType: errors.ErrorTypeAuthentication,
		},
		{
			name:     "audience mismatch",
			status:   http.StatusOK,
			body:     `{"aud":"someone-else","sub":"g-123","email":"a@b.com"}`,
			wantType: errors.ErrorTypeAuthentication,
		},
		{
			name:     "missing subject",
			status:   http.StatusOK,
			body:     `{"aud":"` + testClientID + `","email":"a@b.com"}`,
			wantType: errors.ErrorTypeAuthentication,
		},
		{
			name:     "missing email",
			status:   http.StatusOK,
			body:     `{"aud":"` + testClientID + `","sub":"g-123"}`,
			wantType: errors.ErrorTypeAuthentication,
		},
		{
			name:     "malformed provider response",
			status:   http.StatusOK,
			body:     `not json`,
			wantType: errors.ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
				assert.NotEmpty(t, r.URL.Query().Get("id_token"))
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			claim, err := v.Verify(context.Background(), "some-id-token")
			if tt.wantType != "" {
				require.Error(t, err)
				var appErr *errors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantType, appErr.Type)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSub, claim.Sub)
			assert.Equal(t, "a@b.com", claim.Email)
			assert.Equal(t, "Ada", claim.Name)
			assert.Equal(t, "https://example.com/a.png", claim.AvatarURL)
			assert.True(t, claim.EmailVerified)
		})
	}
}

func TestVerifyEmptyToken(t *testing.T) {
	v := NewVerifier(testClientID, logger.NewNop())

	_, err := v.Verify(context.Background(), "")
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeAuthentication, appErr.Type)
}

func TestVerifyProviderUnreachable(t *testing.T) {
	v, server := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := v.Verify(context.Background(), "some-id-token")
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeExternal, appErr.Type)
}

func TestGetBoolValue(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected bool
	}{
		{name: "native bool", value: true, expected: true},
		{name: "string true", value: "true", expected: true},
		{name: "string false", value: "false", expected: false},
		{name: "absent", value: nil, expected: false},
		{name: "number", value: 1.0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := map[string]interface{}{}
			if tt.value != nil {
				m["email_verified"] = tt.value
			}
			if got := getBoolValue(m, "email_verified"); got != tt.expected {
				t.Errorf("getBoolValue(%v) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}
