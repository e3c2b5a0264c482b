package domain

import "time"

// Note represents a persisted note row. Notes are always scoped to their
// owning user; the repository never reads or writes a note without the
// owner id in the predicate.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     *string   `json:"title,omitempty"`
	Content   *string   `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteInput carries the client-supplied fields for creating or updating a
// note. Both fields are optional, matching the nullable columns.
type NoteInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
