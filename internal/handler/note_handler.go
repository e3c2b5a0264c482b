package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"notes-api/internal/domain"
	"notes-api/internal/middleware"
	"notes-api/internal/service"
	"notes-api/pkg/errors"
	"notes-api/pkg/logger"
)

// NoteHandler handles note CRUD requests. Every route sits behind the
// access guard; the owner id always comes from the session claims, never
// from the request body.
type NoteHandler struct {
	notes service.NoteService
	log   *logger.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(notes service.NoteService, log *logger.Logger) *NoteHandler {
	return &NoteHandler{
		notes: notes,
		log:   log,
	}
}

// RegisterRoutes mounts the note routes on the given router
func (h *NoteHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// NotesResponse wraps a note list
type NotesResponse struct {
	Success bool           `json:"success"`
	Data    []*domain.Note `json:"data"`
}

// NoteResponse wraps a single note
type NoteResponse struct {
	Success bool         `json:"success"`
	Data    *domain.Note `json:"data"`
}

// List handles GET /api/notes
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, errors.NewAuthenticationError("User not authenticated"), h.log)
		return
	}

	notes, err := h.notes.List(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err, h.log)
		return
	}

	writeJSON(w, http.StatusOK, NotesResponse{Success: true, Data: notes}, h.log)
}

// Get handles GET /api/notes/{id}
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, errors.NewAuthenticationError("User not authenticated"), h.log)
		return
	}

	note, err := h.notes.Get(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		writeError(w, err, h.log)
		return
	}
	if note == nil {
		writeError(w, errors.NewNotFoundError("Note not found"), h.log)
		return
	}

	writeJSON(w, http.StatusOK, NoteResponse{Success: true, Data: note}, h.log)
}

// Create handles POST /api/notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, errors.NewAuthenticationError("User not authenticated"), h.log)
		return
	}

	var input domain.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errors.NewValidationError("Invalid request body", nil), h.log)
		return
	}

	note, err := h.notes.Create(r.Context(), claims.UserID, &input)
	if err != nil {
		writeError(w, err, h.log)
		return
	}

	writeJSON(w, http.StatusCreated, NoteResponse{Success: true, Data: note}, h.log)
}

// Update handles PUT /api/notes/{id}
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, errors.NewAuthenticationError("User not authenticated"), h.log)
		return
	}

	var input domain.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errors.NewValidationError("Invalid request body", nil), h.log)
		return
	}

	note, err := h.notes.Update(r.Context(), chi.URLParam(r, "id"), claims.UserID, &input)
	if err != nil {
		writeError(w, err, h.log)
		return
	}
	if note == nil {
		writeError(w, errors.NewNotFoundError("Note not found"), h.log)
		return
	}

	writeJSON(w, http.StatusOK, NoteResponse{Success: true, Data: note}, h.log)
}

// Delete handles DELETE /api/notes/{id}
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, errors.NewAuthenticationError("User not authenticated"), h.log)
		return
	}

	deleted, err := h.notes.Delete(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		writeError(w, err, h.log)
		return
	}
	if !deleted {
		writeError(w, errors.NewNotFoundError("Note not found"), h.log)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
