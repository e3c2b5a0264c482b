package repository

import (
	"context"
	"errors"

	"notes-api/internal/domain"
)

// ErrDuplicateUser is returned by UserRepository.Create when the store's
// uniqueness constraint on (provider, google_id) rejects the insert. It is
// the expected outcome of two first-logins racing and callers absorb it by
// re-reading the winning row.
var ErrDuplicateUser = errors.New("user already exists for provider identity")

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// GetByID retrieves a user by ID. Returns nil, nil when no row matches.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByGoogleID retrieves a user by provider subject id. Returns
	// nil, nil when no row matches.
	GetByGoogleID(ctx context.Context, provider, googleID string) (*domain.User, error)

	// Create inserts a new user and fills in the generated id and
	// timestamps. Returns ErrDuplicateUser on a provider-identity conflict.
	Create(ctx context.Context, user *domain.User) error
}

// NoteRepository defines the interface for note data operations. Every
// method takes the owner id and scopes the query by it.
type NoteRepository interface {
	// ListByUser retrieves a user's notes, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Note, error)

	// GetByID retrieves a single note. Returns nil, nil when no row matches
	// the (id, owner) pair.
	GetByID(ctx context.Context, id, userID string) (*domain.Note, error)

	// Create inserts a new note and fills in the generated id and timestamps.
	Create(ctx context.Context, note *domain.Note) error

	// Update modifies a note's title and content. Returns nil, nil when no
	// row matches the (id, owner) pair.
	Update(ctx context.Context, id, userID string, input *domain.NoteInput) (*domain.Note, error)

	// Delete removes a note. Reports whether a row was deleted.
	Delete(ctx context.Context, id, userID string) (bool, error)
}
