package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tappay/tappay/internal/middlewares"
	"github.com/tappay/tappay/internal/models"
)

func TestHistoryHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockHistoryReader(ctrl)

	userID := uuid.New()
	user := &models.UserDB{UserID: userID, Handle: "me"}

	now := time.Now().UTC()
	txns := []models.TransactionDB{
		{TransactionID: uuid.New(), FromUser: userID.String(), Amount: 3, Timestamp: now},
		{TransactionID: uuid.New(), ToUser: userID.String(), Amount: 7, Timestamp: now.Add(-time.Hour)},
	}

	router := chi.NewRouter()
	router.Get("/transaction/history/{userId}", NewHistoryHandler(mockSvc))

	tests := []struct {
		name         string
		user         *models.UserDB
		pathUserID   string
		mockSetup    func()
		expectedCode int
	}{
		{
			name:       "success",
			user:       user,
			pathUserID: userID.String(),
			mockSetup: func() {
				mockSvc.EXPECT().History(gomock.Any(), userID).Return(txns, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "unauthenticated",
			user:         nil,
			pathUserID:   userID.String(),
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "other user's history is forbidden",
			user:         user,
			pathUserID:   uuid.New().String(),
			mockSetup:    func() {},
			expectedCode: http.StatusForbidden,
		},
		{
			name:       "internal error",
			user:       user,
			pathUserID: userID.String(),
			mockSetup: func() {
				mockSvc.EXPECT().History(gomock.Any(), userID).Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodGet, "/transaction/history/"+tt.pathUserID, nil)
			if tt.user != nil {
				req = req.WithContext(middlewares.ContextWithUser(req.Context(), tt.user))
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedCode == http.StatusOK {
				var resp []models.TransactionDB
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Len(t, resp, 2)
				assert.Equal(t, txns[0].TransactionID, resp[0].TransactionID)
				// most recent first
				assert.True(t, resp[0].Timestamp.After(resp[1].Timestamp))
			}
		})
	}
}

func TestHistoryHandler_EmptyHistoryIsEmptyArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockHistoryReader(ctrl)

	userID := uuid.New()
	user := &models.UserDB{UserID: userID}

	mockSvc.EXPECT().History(gomock.Any(), userID).Return([]models.TransactionDB{}, nil)

	router := chi.NewRouter()
	router.Get("/transaction/history/{userId}", NewHistoryHandler(mockSvc))

	req := httptest.NewRequest(http.MethodGet, "/transaction/history/"+userID.String(), nil)
	req = req.WithContext(middlewares.ContextWithUser(req.Context(), user))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
