package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tappay/tappay/internal/middlewares"
	"github.com/tappay/tappay/internal/models"
)

func TestStatsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockStatsReader(ctrl)

	userID := uuid.New()
	user := &models.UserDB{UserID: userID}

	tests := []struct {
		name         string
		user         *models.UserDB
		mockSetup    func()
		expectedCode int
		expectedBody string
	}{
		{
			name: "success",
			user: user,
			mockSetup: func() {
				mockSvc.EXPECT().Stats(gomock.Any(), userID).
					Return(&models.StatsDB{TotalSent: 12.5, TotalReceived: 4, CountSent: 3, CountReceived: 1}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"total_sent":12.5,"total_received":4,"count_sent":3,"count_received":1}`,
		},
		{
			name: "no transactions yields zeros, not nulls",
			user: user,
			mockSetup: func() {
				mockSvc.EXPECT().Stats(gomock.Any(), userID).
					Return(&models.StatsDB{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"total_sent":0,"total_received":0,"count_sent":0,"count_received":0}`,
		},
		{
			name:         "unauthenticated",
			user:         nil,
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "internal error",
			user: user,
			mockSetup: func() {
				mockSvc.EXPECT().Stats(gomock.Any(), userID).
					Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
			if tt.user != nil {
				req = req.WithContext(middlewares.ContextWithUser(req.Context(), tt.user))
			}
			w := httptest.NewRecorder()

			handler := NewStatsHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestStatsHandler_JSONKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockStatsReader(ctrl)
	userID := uuid.New()

	mockSvc.EXPECT().Stats(gomock.Any(), userID).Return(&models.StatsDB{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	req = req.WithContext(middlewares.ContextWithUser(req.Context(), &models.UserDB{UserID: userID}))
	w := httptest.NewRecorder()

	NewStatsHandler(mockSvc).ServeHTTP(w, req)

	var resp map[string]json.Number
	decoder := json.NewDecoder(w.Body)
	decoder.UseNumber()
	assert.NoError(t, decoder.Decode(&resp))
	for _, key := range []string{"total_sent", "total_received", "count_sent", "count_received"} {
		_, ok := resp[key]
		assert.True(t, ok, "missing key %q", key)
	}
}
