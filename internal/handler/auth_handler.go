package handler

import (
	"net/http"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct{}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type sessionResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ValidateToken echoes the user behind a valid bearer token, letting clients
// check a session before uploading.
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{ID: user.ID, Email: user.Email})
}
