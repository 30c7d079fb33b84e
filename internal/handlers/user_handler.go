package handlers

import (
	"errors"
	"net/http"

	"github.com/Oasis-NEU/s26-group-3/internal/middleware"
	"github.com/Oasis-NEU/s26-group-3/internal/models"
	"github.com/Oasis-NEU/s26-group-3/internal/repository"
)

type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the authenticated user's profile. The JWT middleware has
// already vouched for the subject id in the context.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(middleware.CtxUserID).(string)
	if userID == "" {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Not authenticated")
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeJSONError(w, http.StatusNotFound, "user_not_found", "User not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "get_user_failed", "Failed to get user")
		return
	}

	writeJSON(w, http.StatusOK, models.UserResponse{ID: u.ID, Email: u.Email, NUID: u.NUID})
}
