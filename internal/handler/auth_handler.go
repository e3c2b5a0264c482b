package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"notes-api/internal/domain"
	"notes-api/internal/middleware"
	"notes-api/internal/service"
	"notes-api/pkg/errors"
	"notes-api/pkg/logger"
)

// AuthHandler handles authentication related requests
type AuthHandler struct {
	auth  service.AuthService
	users service.UserService
	log   *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth service.AuthService, users service.UserService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:  auth,
		users: users,
		log:   log,
	}
}

// GoogleLoginRequest is the POST /api/auth/google body
type GoogleLoginRequest struct {
	Credential string `json:"credential"`
}

// LoginResponse wraps the authenticated user and their session token
type LoginResponse struct {
	Success bool      `json:"success"`
	Data    LoginData `json:"data"`
}

// LoginData carries the login payload
type LoginData struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// UserResponse wraps a single user profile
type UserResponse struct {
	Success bool `json:"success"`
	Data    struct {
		User *domain.User `json:"user"`
	} `json:"data"`
}

// GoogleLogin handles POST /api/auth/google: verifies the posted ID token,
// resolves the identity to a local user, and returns a session token.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewValidationError("Invalid request body", nil), h.log)
		return
	}

	if req.Credential == "" {
		writeError(w, errors.NewValidationError("Google credential is required", nil), h.log)
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Credential)
	if err != nil {
		writeError(w, err, h.log)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Data:    LoginData{User: user, Token: token},
	}, h.log)
}

// Me handles GET /api/auth/me: hydrates the full profile for the session's
// user id. The guard already validated the token; this re-fetches the row
// so a deleted account shows up as 404 instead of a ghost profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, errors.NewAuthenticationError("User not authenticated"), h.log)
		return
	}

	user, err := h.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err, h.log)
		return
	}
	if user == nil {
		writeError(w, errors.NewNotFoundError("User not found"), h.log)
		return
	}

	response := UserResponse{Success: true}
	response.Data.User = user
	writeJSON(w, http.StatusOK, response, h.log)
}

// Logout handles POST /api/auth/logout. Sessions are stateless, so there is
// nothing to invalidate server-side; the client discards its token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	}, h.log)
}

// GoogleAuthURL handles GET /api/auth/google/url for the code-flow login.
func (h *AuthHandler) GoogleAuthURL(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		state = fmt.Sprintf("%d", time.Now().UnixNano())
	}

	url, err := h.auth.AuthCodeURL(state)
	if err != nil {
		writeError(w, err, h.log)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    map[string]string{"url": url, "state": state},
	}, h.log)
}

// GoogleCallback handles GET /auth/google/callback: the browser returns
// from Google with a code, which completes the same login as the ID-token
// path.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, errors.NewValidationError("Authorization code is required", nil), h.log)
		return
	}

	user, token, err := h.auth.LoginWithCode(r.Context(), code)
	if err != nil {
		writeError(w, err, h.log)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Data:    LoginData{User: user, Token: token},
	}, h.log)
}
