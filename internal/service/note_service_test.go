package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notes-api/internal/domain"
	"notes-api/pkg/logger"
	"notes-api/pkg/redis"
)

// fakeNoteRepo is an in-memory NoteRepository.
type fakeNoteRepo struct {
	mu     sync.Mutex
	notes  map[string]*domain.Note
	nextID int
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[string]*domain.Note)}
}

func (f *fakeNoteRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := []*domain.Note{}
	for _, note := range f.notes {
		if note.UserID == userID {
			copied := *note
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeNoteRepo) GetByID(ctx context.Context, id, userID string) (*domain.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if note, ok := f.notes[id]; ok && note.UserID == userID {
		copied := *note
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeNoteRepo) Create(ctx context.Context, note *domain.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	note.ID = fmt.Sprintf("note-%d", f.nextID)
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt

	copied := *note
	f.notes[note.ID] = &copied
	return nil
}

func (f *fakeNoteRepo) Update(ctx context.Context, id, userID string, input *domain.NoteInput) (*domain.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	note, ok := f.notes[id]
	if !ok || note.UserID != userID {
		return nil, nil
	}

	note.Title = input.Title
	note.Content = input.Content
	note.UpdatedAt = time.Now()

	copied := *note
	return &copied, nil
}

func (f *fakeNoteRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	note, ok := f.notes[id]
	if !ok || note.UserID != userID {
		return false, nil
	}
	delete(f.notes, id)
	return true, nil
}

func noteInput(title, content string) *domain.NoteInput {
	return &domain.NoteInput{Title: &title, Content: &content}
}

func TestNoteCRUD(t *testing.T) {
	svc := NewNoteService(newFakeNoteRepo(), nil, logger.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", noteInput("groceries", "milk"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	fetched, err := svc.Get(ctx, created.ID, "user-1")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "groceries", *fetched.Title)

	// Another user's read misses.
	other, err := svc.Get(ctx, created.ID, "user-2")
	require.NoError(t, err)
	assert.Nil(t, other)

	updated, err := svc.Update(ctx, created.ID, "user-1", noteInput("groceries", "milk, eggs"))
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "milk, eggs", *updated.Content)

	// Another user's update misses.
	stolen, err := svc.Update(ctx, created.ID, "user-2", noteInput("x", "y"))
	require.NoError(t, err)
	assert.Nil(t, stolen)

	deleted, err := svc.Delete(ctx, created.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, created.ID, "user-1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestNoteListCacheInvalidatedOnWrite(t *testing.T) {
	mr := miniredis.RunT(t)

	cache, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	svc := NewNoteService(newFakeNoteRepo(), cache, logger.NewNop())
	ctx := context.Background()

	_, err = svc.Create(ctx, "user-1", noteInput("first", "one"))
	require.NoError(t, err)

	// A read populates the cache.
	notes, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	cacheKey := cache.KeyBuilder.KeyUserNotes("user-1")
	require.Eventually(t, func() bool {
		return mr.Exists(cacheKey)
	}, 2*time.Second, 10*time.Millisecond)

	// A write drops the cached list so the next read sees the new note.
	_, err = svc.Create(ctx, "user-1", noteInput("second", "two"))
	require.NoError(t, err)
	assert.False(t, mr.Exists(cacheKey))

	notes, err = svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}
