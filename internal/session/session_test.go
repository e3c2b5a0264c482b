package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-api/internal/domain"
	"notes-api/pkg/errors"
	"notes-api/pkg/logger"
)

func strPtr(s string) *string { return &s }

func TestIssueValidateRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour, logger.NewNop())

	tests := []struct {
		name string
		user *domain.User
	}{
		{
			name: "full profile",
			user: &domain.User{
				ID:        "user-1",
				Email:     "a@b.com",
				Name:      strPtr("Ada Lovelace"),
				AvatarURL: strPtr("https://example.com/ada.png"),
			},
		},
		{
			name: "optional fields absent",
			user: &domain.User{
				ID:    "user-2",
				Email: "b@c.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Issue(tt.user)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := svc.Validate(token)
			require.NoError(t, err)

			assert.Equal(t, tt.user.ID, claims.UserID)
			assert.Equal(t, tt.user.Email, claims.Email)
			if tt.user.Name != nil {
				assert.Equal(t, *tt.user.Name, claims.Name)
			} else {
				assert.Empty(t, claims.Name)
			}
			if tt.user.AvatarURL != nil {
				assert.Equal(t, *tt.user.AvatarURL, claims.AvatarURL)
			} else {
				assert.Empty(t, claims.AvatarURL)
			}
		})
	}
}

func TestValidateExpiredToken(t *testing.T) {
	// A negative lifetime produces a token that is already past expiry.
	expired := NewService("test-secret", -time.Second, logger.NewNop())

	token, err := expired.Issue(&domain.User{ID: "user-1", Email: "a@b.com"})
	require.NoError(t, err)

	_, err = expired.Validate(token)
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeAuthorization, appErr.Type)
}

func TestValidateShortLivedToken(t *testing.T) {
	svc := NewService("test-secret", time.Second, logger.NewNop())

	token, err := svc.Issue(&domain.User{ID: "user-1", Email: "a@b.com"})
	require.NoError(t, err)

	// Valid before expiry.
	_, err = svc.Validate(token)
	require.NoError(t, err)

	// Invalid strictly after it.
	time.Sleep(1100 * time.Millisecond)
	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestValidateTamperedToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour, logger.NewNop())

	token, err := svc.Issue(&domain.User{ID: "user-1", Email: "a@b.com"})
	require.NoError(t, err)

	// Flip one byte in the payload segment.
	raw := []byte(token)
	mid := len(raw) / 2
	if raw[mid] == 'A' {
		raw[mid] = 'B'
	} else {
		raw[mid] = 'A'
	}

	_, err = svc.Validate(string(raw))
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeAuthorization, appErr.Type)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewService("secret-a", time.Hour, logger.NewNop())
	validator := NewService("secret-b", time.Hour, logger.NewNop())

	token, err := issuer.Issue(&domain.User{ID: "user-1", Email: "a@b.com"})
	require.NoError(t, err)

	_, err = validator.Validate(token)
	assert.Error(t, err)
}

func TestValidateMalformedToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour, logger.NewNop())

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "not a jwt", token: "definitely-not-a-token"},
		{name: "two segments", token: "header.payload"},
		{name: "garbage segments", token: "a.b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			assert.Error(t, err)
		})
	}
}
