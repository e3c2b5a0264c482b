package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"notes-api/internal/domain"
	"notes-api/pkg/errors"
	"notes-api/pkg/logger"
)

// Service issues and validates signed session tokens. Sessions are
// stateless: the token itself carries the user's public identity fields and
// the server stores nothing, so validation is a pure signature and expiry
// check with no I/O.
type Service struct {
	secret   []byte
	lifetime time.Duration
	logger   *logger.Logger
}

// NewService creates a session service signing with the given secret.
// Lifetime bounds every issued token; expired tokens are rejected with no
// refresh path.
func NewService(secret string, lifetime time.Duration, logger *logger.Logger) *Service {
	return &Service{
		secret:   []byte(secret),
		lifetime: lifetime,
		logger:   logger,
	}
}

// Issue signs a session token embedding the user's public identity fields.
func (s *Service) Issue(user *domain.User) (string, error) {
	now := time.Now()

	claims := &domain.SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}
	if user.Name != nil {
		claims.Name = *user.Name
	}
	if user.AvatarURL != nil {
		claims.AvatarURL = *user.AvatarURL
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	s.logger.WithField("user_id", user.ID).Debug("Session token issued")
	return signed, nil
}

// Validate parses and verifies a presented session token. Malformed,
// forged, and expired tokens all come back as an authorization error; the
// caller decides how to surface it. A valid decode returns the embedded
// identity fields verbatim.
func (s *Service) Validate(tokenString string) (*domain.SessionClaims, error) {
	claims := &domain.SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.NewAuthorizationError("Invalid or expired token")
	}
	if !token.Valid {
		return nil, errors.NewAuthorizationError("Invalid or expired token")
	}

	if claims.UserID == "" {
		return nil, errors.NewAuthorizationError("Invalid token: no user identifier")
	}

	return claims, nil
}
