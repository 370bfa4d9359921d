package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tappay/tappay/internal/logger"
	"github.com/tappay/tappay/internal/models"
)

// ProfileReader looks up users by handle.
type ProfileReader interface {
	GetByHandle(ctx context.Context, handle string) (*models.UserDB, error)
}

// ProfileErrorResponse represents an error response for profile lookup
// swagger:model ProfileErrorResponse
type ProfileErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

// NewProfileHandler returns an HTTP handler for public profile lookup.
// @Summary Get public profile
// @Description Returns the public view of the user with the given handle
// @Tags profile
// @Produce json
// @Param handle path string true "Public handle"
// @Success 200 {object} models.PublicUser "Public user view"
// @Failure 404 {object} handlers.ProfileErrorResponse "User not found"
// @Router /profile/{handle} [get]
func NewProfileHandler(users ProfileReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := chi.URLParam(r, "handle")

		user, err := users.GetByHandle(r.Context(), handle)
		if err != nil {
			logger.Log.Errorw("failed to look up profile", "handle", handle, "err", err)
			writeJSON(w, http.StatusInternalServerError, ProfileErrorResponse{Error: "Internal server error"})
			return
		}
		if user == nil {
			writeJSON(w, http.StatusNotFound, ProfileErrorResponse{Error: "User not found"})
			return
		}

		writeJSON(w, http.StatusOK, user.Public())
	}
}
