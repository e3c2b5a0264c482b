package service

import (
	"context"

	"notes-api/internal/domain"
	"notes-api/pkg/errors"
	"notes-api/pkg/logger"
)

// authService composes the credential verifier, user directory, and session
// issuer into the login flows.
type authService struct {
	verifier CredentialVerifier
	oauth    CodeExchanger
	users    UserService
	sessions SessionIssuer
	logger   *logger.Logger
}

// NewAuthService creates a new auth service. oauth may be nil; the code
// flow then reports itself unavailable.
func NewAuthService(verifier CredentialVerifier, oauth CodeExchanger, users UserService, sessions SessionIssuer, logger *logger.Logger) AuthService {
	return &authService{
		verifier: verifier,
		oauth:    oauth,
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Login verifies a Google ID token, resolves it to a local user, and issues
// a session token.
func (s *authService) Login(ctx context.Context, credential string) (*domain.User, string, error) {
	claim, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, "", err
	}

	return s.completeLogin(ctx, claim)
}

// AuthCodeURL returns the Google consent URL for the code flow.
func (s *authService) AuthCodeURL(state string) (string, error) {
	if s.oauth == nil {
		return "", errors.NewNotFoundError("OAuth code flow is not configured")
	}
	return s.oauth.AuthCodeURL(state), nil
}

// LoginWithCode exchanges an authorization code and completes the same
// find-or-create and session issuance as the ID-token path.
func (s *authService) LoginWithCode(ctx context.Context, code string) (*domain.User, string, error) {
	if s.oauth == nil {
		return nil, "", errors.NewNotFoundError("OAuth code flow is not configured")
	}

	claim, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, "", err
	}

	return s.completeLogin(ctx, claim)
}

func (s *authService) completeLogin(ctx context.Context, claim *domain.IdentityClaim) (*domain.User, string, error) {
	user, err := s.users.FindOrCreate(ctx, claim)
	if err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to issue session token")
		return nil, "", errors.NewInternalError("Failed to issue session token", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User authenticated")

	return user, token, nil
}
