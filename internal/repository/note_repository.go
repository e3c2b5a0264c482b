package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"notes-api/internal/domain"
	"notes-api/pkg/database"
)

// noteRepository handles note row operations with PostgreSQL
type noteRepository struct {
	db *database.PostgresDB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *database.PostgresDB) NoteRepository {
	return &noteRepository{
		db: db,
	}
}

const noteColumns = `id, user_id, title, content, created_at, updated_at`

// ListByUser retrieves a user's notes, newest first
func (r *noteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := []*domain.Note{}
	for rows.Next() {
		note := &domain.Note{}
		err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.Title,
			&note.Content,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading note rows: %w", err)
	}

	return notes, nil
}

// GetByID retrieves a single note scoped to its owner
func (r *noteRepository) GetByID(ctx context.Context, id, userID string) (*domain.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE id = $1 AND user_id = $2
	`

	note := &domain.Note{}
	err := r.db.Pool.QueryRow(ctx, query, id, userID).Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// Create inserts a new note row
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	query := `
		INSERT INTO notes (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		note.UserID,
		note.Title,
		note.Content,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

// Update modifies a note's title and content, scoped to its owner
func (r *noteRepository) Update(ctx context.Context, id, userID string, input *domain.NoteInput) (*domain.Note, error) {
	query := `
		UPDATE notes
		SET title = $3, content = $4, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + noteColumns + `
	`

	note := &domain.Note{}
	err := r.db.Pool.QueryRow(ctx, query, id, userID, input.Title, input.Content).Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// Delete removes a note, scoped to its owner
func (r *noteRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	query := `
		DELETE FROM notes
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.Pool.Exec(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete note: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
