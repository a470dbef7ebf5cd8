package handlers

import (
	"net/http"
	"time"

	"github.com/tmarcinkow/bookmarkd/internal/application/ports"
	"github.com/tmarcinkow/bookmarkd/internal/domain"
	"github.com/tmarcinkow/bookmarkd/internal/infrastructure/http/middleware"
)

// UsersHandler handles /users/* (GET /users/me). Requires bearer auth.
type UsersHandler struct {
	userRepo ports.UserRepository
}

func NewUsersHandler(userRepo ports.UserRepository) *UsersHandler {
	return &UsersHandler{userRepo: userRepo}
}

// MeResponse is the JSON shape for GET /users/me (no password hash).
type MeResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Me returns the current user from the token. Requires AuthValidator
// middleware.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	userID, err := domain.ParseUserID(identity.UserID)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "", "invalid token subject")
		return
	}
	user, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if user == nil {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, MeResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	})
}
