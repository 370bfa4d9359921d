package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tappay/tappay/internal/middlewares"
	"github.com/tappay/tappay/internal/models"
	"github.com/tappay/tappay/internal/services"
)

func TestSendHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSender(ctrl)

	senderID := uuid.New()
	sender := &models.UserDB{UserID: senderID, Handle: "me"}
	receiverID := uuid.New()

	txn := &models.TransactionDB{
		TransactionID: uuid.New(),
		FromUser:      senderID.String(),
		ToUser:        receiverID.String(),
		Amount:        25.5,
		Timestamp:     time.Now().UTC(),
	}

	tests := []struct {
		name         string
		user         *models.UserDB
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
		expectedErr  string
	}{
		{
			name:      "success by handle",
			user:      sender,
			inputBody: SendRequest{ToHandle: "ann1", Amount: 25.5},
			mockSetup: func() {
				mockSvc.EXPECT().
					Send(gomock.Any(), senderID, "", "ann1", 25.5).
					Return(txn, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "unauthenticated",
			user:         nil,
			inputBody:    SendRequest{ToHandle: "ann1", Amount: 25.5},
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  "Unauthorized",
		},
		{
			name:         "invalid JSON",
			user:         sender,
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Invalid request body",
		},
		{
			name:         "non-positive amount",
			user:         sender,
			inputBody:    SendRequest{ToHandle: "ann1", Amount: -3},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Amount must be greater than zero",
		},
		{
			name:      "receiver not specified",
			user:      sender,
			inputBody: SendRequest{Amount: 10},
			mockSetup: func() {
				mockSvc.EXPECT().
					Send(gomock.Any(), senderID, "", "", 10.0).
					Return(nil, services.ErrReceiverNotSpecified)
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Receiver not specified",
		},
		{
			name:      "malformed receiver id",
			user:      sender,
			inputBody: SendRequest{ToUserID: "zzz", Amount: 10},
			mockSetup: func() {
				mockSvc.EXPECT().
					Send(gomock.Any(), senderID, "zzz", "", 10.0).
					Return(nil, services.ErrInvalidReceiverID)
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Invalid toUserId",
		},
		{
			name:      "receiver not found",
			user:      sender,
			inputBody: SendRequest{ToHandle: "ghost", Amount: 10},
			mockSetup: func() {
				mockSvc.EXPECT().
					Send(gomock.Any(), senderID, "", "ghost", 10.0).
					Return(nil, services.ErrReceiverNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedErr:  "Receiver not found",
		},
		{
			name:      "internal error",
			user:      sender,
			inputBody: SendRequest{ToHandle: "ann1", Amount: 10},
			mockSetup: func() {
				mockSvc.EXPECT().
					Send(gomock.Any(), senderID, "", "ann1", 10.0).
					Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var bodyBytes []byte
			switch v := tt.inputBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, _ = json.Marshal(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/transaction/send", bytes.NewReader(bodyBytes))
			if tt.user != nil {
				req = req.WithContext(middlewares.ContextWithUser(req.Context(), tt.user))
			}
			w := httptest.NewRecorder()

			handler := NewSendHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedCode == http.StatusOK {
				var resp SendResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "sent", resp.Status)
				assert.Equal(t, txn.TransactionID, resp.Transaction.TransactionID)
				assert.Equal(t, txn.Amount, resp.Transaction.Amount)
			} else {
				var resp SendErrorResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedErr, resp.Error)
			}
		})
	}
}
