package service

import (
	"context"

	"notes-api/internal/domain"
)

// CredentialVerifier validates a third-party identity assertion and
// extracts the canonical claim. Implemented by internal/verifier.
type CredentialVerifier interface {
	Verify(ctx context.Context, idToken string) (*domain.IdentityClaim, error)
}

// CodeExchanger implements the server-side authorization-code login path.
// Implemented by internal/verifier.OAuthFlow; nil when not configured.
type CodeExchanger interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*domain.IdentityClaim, error)
}

// SessionIssuer signs session tokens. Implemented by internal/session.
type SessionIssuer interface {
	Issue(user *domain.User) (string, error)
}

// AuthService drives the login flows: verify an assertion, resolve it to a
// local user, issue a session token.
type AuthService interface {
	// Login verifies a Google ID token and returns the resolved user with a
	// freshly issued session token.
	Login(ctx context.Context, credential string) (*domain.User, string, error)

	// AuthCodeURL returns the Google consent URL for the code flow, or an
	// error when the flow is not configured.
	AuthCodeURL(state string) (string, error)

	// LoginWithCode exchanges an authorization code and returns the resolved
	// user with a freshly issued session token.
	LoginWithCode(ctx context.Context, code string) (*domain.User, string, error)
}

// UserService is the user directory: it owns the mapping from provider
// identities to local user rows.
type UserService interface {
	// FindOrCreate resolves an identity claim to a local user, creating the
	// row on first sight. Idempotent and safe under concurrent callers.
	FindOrCreate(ctx context.Context, claim *domain.IdentityClaim) (*domain.User, error)

	// GetByID retrieves a user's full profile. Returns nil, nil when the id
	// has no matching row.
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// NoteService handles owner-scoped note operations.
type NoteService interface {
	List(ctx context.Context, userID string) ([]*domain.Note, error)
	Get(ctx context.Context, id, userID string) (*domain.Note, error)
	Create(ctx context.Context, userID string, input *domain.NoteInput) (*domain.Note, error)
	Update(ctx context.Context, id, userID string, input *domain.NoteInput) (*domain.Note, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// Services aggregates all service interfaces
type Services struct {
	Auth  AuthService
	Users UserService
	Notes NoteService
}
