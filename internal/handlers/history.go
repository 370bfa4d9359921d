package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tappay/tappay/internal/logger"
	"github.com/tappay/tappay/internal/middlewares"
	"github.com/tappay/tappay/internal/models"
)

// HistoryReader defines the interface that the ledger service must implement.
type HistoryReader interface {
	History(ctx context.Context, userID uuid.UUID) ([]models.TransactionDB, error)
}

// HistoryErrorResponse represents an error response for history
// swagger:model HistoryErrorResponse
type HistoryErrorResponse struct {
	// Error message
	// default: Forbidden
	Error string `json:"error"`
}

// NewHistoryHandler returns an HTTP handler for transaction history. A user
// may only request their own history.
// @Summary Transaction history
// @Description Returns the authenticated user's transactions, most recent first
// @Tags transaction
// @Produce json
// @Param userId path string true "User id, must match the authenticated user"
// @Success 200 {array} models.TransactionDB "Ordered transactions"
// @Failure 401 {object} handlers.HistoryErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.HistoryErrorResponse "Requesting another user's history"
// @Router /transaction/history/{userId} [get]
// @Security BearerAuth
func NewHistoryHandler(svc HistoryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, HistoryErrorResponse{Error: "Unauthorized"})
			return
		}

		requestedID := chi.URLParam(r, "userId")
		if requestedID != user.UserID.String() {
			writeJSON(w, http.StatusForbidden, HistoryErrorResponse{Error: "Forbidden"})
			return
		}

		txns, err := svc.History(r.Context(), user.UserID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, HistoryErrorResponse{Error: "Internal server error"})
			return
		}

		writeJSON(w, http.StatusOK, txns)
	}
}
