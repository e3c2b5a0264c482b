package verifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"notes-api/internal/domain"
	"notes-api/pkg/errors"
	"notes-api/pkg/logger"
)

// googleTokenInfoURL is Google's ID-token introspection endpoint.
const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// Verifier validates Google ID tokens against the tokeninfo endpoint and
// extracts a canonical identity claim. It performs no retries and keeps no
// state; callers own their latency and retry policy.
type Verifier struct {
	clientID     string
	tokenInfoURL string
	httpClient   *http.Client
	logger       *logger.Logger
}

// NewVerifier creates a verifier for the given OAuth client ID. The client
// ID doubles as the expected token audience.
func NewVerifier(clientID string, logger *logger.Logger) *Verifier {
	return &Verifier{
		clientID:     clientID,
		tokenInfoURL: googleTokenInfoURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Verify validates an ID token and returns the identity claim it asserts.
// The token is trusted only after Google confirms the signature and the
// audience matches the configured client ID.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*domain.IdentityClaim, error) {
	if idToken == "" {
		return nil, errors.NewAuthenticationError("Credential is required")
	}

	endpoint := fmt.Sprintf("%s?id_token=%s", v.tokenInfoURL, url.QueryEscape(idToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewInternalError("Failed to create tokeninfo request", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.logger.WithError(err).Error("Failed to call Google tokeninfo endpoint")
		return nil, errors.NewExternalError("Identity provider is unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.WithField("status_code", resp.StatusCode).Error("Google rejected the credential")
		return nil, errors.NewAuthenticationError("Invalid or expired Google credential")
	}

	var tokenInfo map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		v.logger.WithError(err).Error("Failed to decode tokeninfo response")
		return nil, errors.NewInternalError("Failed to decode token information", err)
	}

	if aud := getStringValue(tokenInfo, "aud"); aud != v.clientID {
		v.logger.WithFields(map[string]interface{}{
			"expected_audience": v.clientID,
			"actual_audience":   aud,
		}).Error("Token audience mismatch")
		return nil, errors.NewAuthenticationError("Token not intended for this application")
	}

	claim := &domain.IdentityClaim{
		Sub:           getStringValue(tokenInfo, "sub"),
		Email:         getStringValue(tokenInfo, "email"),
		Name:          getStringValue(tokenInfo, "name"),
		AvatarURL:     getStringValue(tokenInfo, "picture"),
		EmailVerified: getBoolValue(tokenInfo, "email_verified"),
	}

	if claim.Sub == "" || claim.Email == "" {
		v.logger.WithFields(map[string]interface{}{
			"has_sub":   claim.Sub != "",
			"has_email": claim.Email != "",
		}).Error("Token payload missing required claims")
		return nil, errors.NewAuthenticationError("Credential is missing required claims")
	}

	v.logger.WithFields(map[string]interface{}{
		"subject":        claim.Sub,
		"email":          claim.Email,
		"email_verified": claim.EmailVerified,
	}).Info("Google credential verified")

	return claim, nil
}

// Helper functions to safely extract values from the tokeninfo response.
// Google returns email_verified as either a bool or the string "true"
// depending on the endpoint variant.
func getStringValue(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

func getBoolValue(m map[string]interface{}, key string) bool {
	switch val := m[key].(type) {
	case bool:
		return val
	case string:
		return val == "true"
	default:
		return false
	}
}
