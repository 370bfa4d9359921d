package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/tappay/tappay/internal/logger"
	"github.com/tappay/tappay/internal/middlewares"
	"github.com/tappay/tappay/internal/models"
)

// StatsReader defines the interface that the ledger service must implement.
type StatsReader interface {
	Stats(ctx context.Context, userID uuid.UUID) (*models.StatsDB, error)
}

// StatsErrorResponse represents an error response for dashboard stats
// swagger:model StatsErrorResponse
type StatsErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// NewStatsHandler returns an HTTP handler for the dashboard aggregates.
// @Summary Dashboard stats
// @Description Returns totals and counts of sent and received transactions for the authenticated user. All four counters are zero for a user with no transactions.
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.StatsDB "Aggregate counters"
// @Failure 401 {object} handlers.StatsErrorResponse "Unauthorized"
// @Router /dashboard/stats [get]
// @Security BearerAuth
func NewStatsHandler(svc StatsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, StatsErrorResponse{Error: "Unauthorized"})
			return
		}

		stats, err := svc.Stats(r.Context(), user.UserID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, StatsErrorResponse{Error: "Internal server error"})
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}
