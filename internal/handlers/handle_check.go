package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tappay/tappay/internal/logger"
)

// HandleCheckResponse reports whether a handle is still free.
// swagger:model HandleCheckResponse
type HandleCheckResponse struct {
	// The checked handle
	// default: ann1
	Handle string `json:"handle"`

	// Whether the handle is available
	// default: true
	Available bool `json:"available"`
}

// HandleCheckErrorResponse represents an error response for handle checks
// swagger:model HandleCheckErrorResponse
type HandleCheckErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewHandleCheckHandler returns an HTTP handler for handle availability.
// @Summary Check handle availability
// @Description Reports whether the given handle is still free to register
// @Tags profile
// @Produce json
// @Param handle path string true "Handle to check"
// @Success 200 {object} handlers.HandleCheckResponse "Availability"
// @Router /handle/check/{handle} [get]
func NewHandleCheckHandler(users ProfileReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := chi.URLParam(r, "handle")

		user, err := users.GetByHandle(r.Context(), handle)
		if err != nil {
			logger.Log.Errorw("failed to check handle", "handle", handle, "err", err)
			writeJSON(w, http.StatusInternalServerError, HandleCheckErrorResponse{Error: "Internal server error"})
			return
		}

		writeJSON(w, http.StatusOK, HandleCheckResponse{Handle: handle, Available: user == nil})
	}
}
