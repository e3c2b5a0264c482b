package verifier

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"notes-api/internal/domain"
	"notes-api/pkg/errors"
	"notes-api/pkg/logger"
)

// googleUserInfoURL returns the profile of the user an access token belongs to.
const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// OAuthFlow implements the server-side authorization-code login path: the
// browser is sent to Google, comes back with a code, and the code is
// exchanged for an access token used to fetch the user's profile. It yields
// the same IdentityClaim as the ID-token path.
type OAuthFlow struct {
	config      *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
	logger      *logger.Logger
}

// NewOAuthFlow creates the code-flow helper. All three parameters are
// required; the caller gates construction on configuration.
func NewOAuthFlow(clientID, clientSecret, redirectURL string, logger *logger.Logger) *OAuthFlow {
	return &OAuthFlow{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// AuthCodeURL builds the URL the client should redirect the browser to.
func (f *OAuthFlow) AuthCodeURL(state string) string {
	return f.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for the user's identity claim.
func (f *OAuthFlow) Exchange(ctx context.Context, code string) (*domain.IdentityClaim, error) {
	if code == "" {
		return nil, errors.NewValidationError("Authorization code is required", nil)
	}

	token, err := f.config.Exchange(ctx, code)
	if err != nil {
		f.logger.WithError(err).Error("Google code exchange failed")
		return nil, errors.NewAuthenticationError("Failed to exchange authorization code")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.userInfoURL, nil)
	if err != nil {
		return nil, errors.NewInternalError("Failed to create userinfo request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.WithError(err).Error("Failed to call Google userinfo endpoint")
		return nil, errors.NewExternalError("Identity provider is unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.WithField("status_code", resp.StatusCode).Error("Google userinfo returned error")
		return nil, errors.NewAuthenticationError("Failed to fetch user profile")
	}

	var info struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, errors.NewInternalError("Failed to decode userinfo response", err)
	}

	if info.ID == "" || info.Email == "" {
		return nil, errors.NewAuthenticationError("Profile is missing required claims")
	}

	f.logger.WithFields(map[string]interface{}{
		"subject": info.ID,
		"email":   info.Email,
	}).Info("Google code flow completed")

	return &domain.IdentityClaim{
		Sub:           info.ID,
		Email:         info.Email,
		Name:          info.Name,
		AvatarURL:     info.Picture,
		EmailVerified: info.VerifiedEmail,
	}, nil
}
