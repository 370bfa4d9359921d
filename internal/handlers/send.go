package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/tappay/tappay/internal/logger"
	"github.com/tappay/tappay/internal/middlewares"
	"github.com/tappay/tappay/internal/models"
	"github.com/tappay/tappay/internal/services"
)

// Sender defines the interface that the transfer service must implement.
type Sender interface {
	Send(ctx context.Context, senderID uuid.UUID, toUserID, toHandle string, amount float64) (*models.TransactionDB, error)
}

// SendRequest represents the JSON body for sending money. The receiver is
// given either by id or by handle; when both are present the id wins.
// swagger:model SendRequest
type SendRequest struct {
	// Receiver handle
	// required: false
	// default: ann1
	ToHandle string `json:"toHandle"`

	// Receiver user id
	// required: false
	ToUserID string `json:"toUserId"`

	// Amount, must be positive
	// required: true
	// default: 25.5
	Amount float64 `json:"amount"`
}

// SendResponse represents a successful transfer response
// swagger:model SendResponse
type SendResponse struct {
	// Transfer status
	// default: sent
	Status string `json:"status"`

	// The created ledger record
	Transaction models.TransactionDB `json:"transaction"`
}

// SendErrorResponse represents an error response for transfers
// swagger:model SendErrorResponse
type SendErrorResponse struct {
	// Error message
	// default: Receiver not found
	Error string `json:"error"`
}

// NewSendHandler returns an HTTP handler for sending money.
// @Summary Send money
// @Description Appends one immutable ledger record from the authenticated user to the resolved receiver. No balance is checked or stored.
// @Tags transaction
// @Accept json
// @Produce json
// @Param sendRequest body handlers.SendRequest true "Transfer request"
// @Success 200 {object} handlers.SendResponse "Created transaction"
// @Failure 400 {object} handlers.SendErrorResponse "Invalid amount, receiver not specified or malformed receiver id"
// @Failure 401 {object} handlers.SendErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.SendErrorResponse "Receiver not found"
// @Router /transaction/send [post]
// @Security BearerAuth
func NewSendHandler(svc Sender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, SendErrorResponse{Error: "Unauthorized"})
			return
		}

		var req SendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, SendErrorResponse{Error: "Invalid request body"})
			return
		}

		if req.Amount <= 0 {
			logger.Log.Warnw("invalid transfer amount", "amount", req.Amount)
			writeJSON(w, http.StatusBadRequest, SendErrorResponse{Error: "Amount must be greater than zero"})
			return
		}

		txn, err := svc.Send(r.Context(), user.UserID, req.ToUserID, req.ToHandle, req.Amount)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidAmount):
				writeJSON(w, http.StatusBadRequest, SendErrorResponse{Error: "Amount must be greater than zero"})
			case errors.Is(err, services.ErrReceiverNotSpecified):
				writeJSON(w, http.StatusBadRequest, SendErrorResponse{Error: "Receiver not specified"})
			case errors.Is(err, services.ErrInvalidReceiverID):
				writeJSON(w, http.StatusBadRequest, SendErrorResponse{Error: "Invalid toUserId"})
			case errors.Is(err, services.ErrReceiverNotFound):
				writeJSON(w, http.StatusNotFound, SendErrorResponse{Error: "Receiver not found"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, SendErrorResponse{Error: "Internal server error"})
			}
			return
		}

		writeJSON(w, http.StatusOK, SendResponse{Status: "sent", Transaction: *txn})
	}
}
