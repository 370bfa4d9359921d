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
	"github.com/tappay/tappay/internal/models"
	"github.com/tappay/tappay/internal/repositories"
)

func TestSignupHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSignuper(ctrl)

	userID := uuid.New()
	created := &models.UserDB{
		UserID:    userID,
		Name:      "Ann",
		Handle:    "ann1",
		Email:     "a@x.com",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
	}{
		{
			name: "success",
			inputBody: SignupRequest{
				Name:     "Ann",
				Handle:   "ann1",
				Email:    "a@x.com",
				Password: "pw",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Register(gomock.Any(), "Ann", "ann1", "a@x.com", "pw", gomock.Nil()).
					Return(created, "JWT_TOKEN", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "bad handle pattern",
			inputBody: SignupRequest{
				Name:     "Ann",
				Handle:   "Ann!",
				Email:    "a@x.com",
				Password: "pw",
			},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "handle too short",
			inputBody: SignupRequest{
				Name:     "Ann",
				Handle:   "an",
				Email:    "a@x.com",
				Password: "pw",
			},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "bad email",
			inputBody: SignupRequest{
				Name:     "Ann",
				Handle:   "ann1",
				Email:    "not-an-email",
				Password: "pw",
			},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "missing password",
			inputBody: SignupRequest{
				Name:   "Ann",
				Handle: "ann1",
				Email:  "a@x.com",
			},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "duplicate handle",
			inputBody: SignupRequest{
				Name:     "Ann Two",
				Handle:   "ann1",
				Email:    "other@x.com",
				Password: "pw",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Register(gomock.Any(), "Ann Two", "ann1", "other@x.com", "pw", gomock.Nil()).
					Return(nil, "", repositories.ErrHandleTaken)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			inputBody: SignupRequest{
				Name:     "Ann Two",
				Handle:   "ann2",
				Email:    "a@x.com",
				Password: "pw",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Register(gomock.Any(), "Ann Two", "ann2", "a@x.com", "pw", gomock.Nil()).
					Return(nil, "", repositories.ErrEmailTaken)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "internal error",
			inputBody: SignupRequest{
				Name:     "Ann",
				Handle:   "ann1",
				Email:    "a@x.com",
				Password: "pw",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Register(gomock.Any(), "Ann", "ann1", "a@x.com", "pw", gomock.Nil()).
					Return(nil, "", errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
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

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(bodyBytes))
			w := httptest.NewRecorder()

			handler := NewSignupHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedCode == http.StatusOK {
				var resp AuthResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "JWT_TOKEN", resp.Token)
				assert.Equal(t, userID.String(), resp.User.ID)
				assert.Equal(t, "ann1", resp.User.Handle)
				// password hash must never be serialized
				assert.NotContains(t, w.Body.String(), "passwordHash")
				assert.NotContains(t, w.Body.String(), "password_hash")
			} else {
				var resp SignupErrorResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.Error)
			}
		})
	}
}
