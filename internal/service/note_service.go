package service

import (
	"context"
	"encoding/json"
	"time"

	"notes-api/internal/domain"
	"notes-api/internal/repository"
	"notes-api/pkg/errors"
	"notes-api/pkg/logger"
	"notes-api/pkg/redis"
)

// noteService implements owner-scoped note operations with an optional
// Redis cache for list reads.
type noteService struct {
	notes  repository.NoteRepository
	cache  *redis.Client
	logger *logger.Logger
}

// NewNoteService creates a new note service. cache may be nil.
func NewNoteService(notes repository.NoteRepository, cache *redis.Client, logger *logger.Logger) NoteService {
	return &noteService{
		notes:  notes,
		cache:  cache,
		logger: logger,
	}
}

// List retrieves a user's notes, newest first, with a cache-aside read.
func (s *noteService) List(ctx context.Context, userID string) ([]*domain.Note, error) {
	if s.cache != nil {
		cacheKey := s.cache.KeyBuilder.KeyUserNotes(userID)
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil && cached != "" {
			var notes []*domain.Note
			if unmarshalErr := json.Unmarshal([]byte(cached), &notes); unmarshalErr == nil {
				s.logger.WithField("user_id", userID).Debug("Note list cache hit")
				return notes, nil
			}
			s.logger.WithField("user_id", userID).Warn("Note list cache corrupted, falling back to database")
		} else if err != nil && !redis.IsNil(err) {
			s.logger.WithError(err).Warn("Note list cache error, falling back to database")
		}
	}

	notes, err := s.notes.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list notes", err)
	}

	if s.cache != nil {
		go s.cacheListAsync(userID, notes)
	}

	return notes, nil
}

// Get retrieves a single note. Returns nil, nil when the note does not
// exist or belongs to another user.
func (s *noteService) Get(ctx context.Context, id, userID string) (*domain.Note, error) {
	note, err := s.notes.GetByID(ctx, id, userID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to get note", err)
	}
	return note, nil
}

// Create inserts a new note owned by userID.
func (s *noteService) Create(ctx context.Context, userID string, input *domain.NoteInput) (*domain.Note, error) {
	note := &domain.Note{
		UserID:  userID,
		Title:   input.Title,
		Content: input.Content,
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, errors.NewInternalError("Failed to create note", err)
	}

	s.invalidateList(ctx, userID)
	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"note_id": note.ID,
	}).Debug("Note created")

	return note, nil
}

// Update modifies a note's title and content. Returns nil, nil when no
// owned note matches.
func (s *noteService) Update(ctx context.Context, id, userID string, input *domain.NoteInput) (*domain.Note, error) {
	note, err := s.notes.Update(ctx, id, userID, input)
	if err != nil {
		return nil, errors.NewInternalError("Failed to update note", err)
	}

	if note != nil {
		s.invalidateList(ctx, userID)
	}

	return note, nil
}

// Delete removes a note. Reports whether an owned note was deleted.
func (s *noteService) Delete(ctx context.Context, id, userID string) (bool, error) {
	deleted, err := s.notes.Delete(ctx, id, userID)
	if err != nil {
		return false, errors.NewInternalError("Failed to delete note", err)
	}

	if deleted {
		s.invalidateList(ctx, userID)
	}

	return deleted, nil
}

// invalidateList drops the cached note list after a write. Failures only
// cost staleness up to the list TTL.
func (s *noteService) invalidateList(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cache.KeyBuilder.KeyUserNotes(userID)); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to invalidate note list cache")
	}
}

// cacheListAsync writes a note list to the cache outside the request path.
func (s *noteService) cacheListAsync(userID string, notes []*domain.Note) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	payload, err := json.Marshal(notes)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, s.cache.KeyBuilder.KeyUserNotes(userID), payload, redis.TTLUserNotes); err != nil {
		s.logger.WithError(err).Debug("Failed to cache note list")
	}
}
