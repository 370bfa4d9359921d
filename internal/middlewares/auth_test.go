package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tappay/tappay/internal/models"
)

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	user := &models.UserDB{UserID: userID, Handle: "ann1"}

	tests := []struct {
		name         string
		mockSetup    func(tokener *MockTokener, users *MockUserGetter)
		expectedCode int
		expectedBody string
		nextCalled   bool
	}{
		{
			name: "valid token",
			mockSetup: func(tokener *MockTokener, users *MockUserGetter) {
				tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token", nil)
				tokener.EXPECT().GetUserID(gomock.Any(), "token").Return(userID, nil)
				users.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
			},
			expectedCode: http.StatusOK,
			nextCalled:   true,
		},
		{
			name: "missing token",
			mockSetup: func(tokener *MockTokener, users *MockUserGetter) {
				tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("authorization header missing"))
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"Unauthorized"}`,
		},
		{
			name: "invalid token",
			mockSetup: func(tokener *MockTokener, users *MockUserGetter) {
				tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("bad", nil)
				tokener.EXPECT().GetUserID(gomock.Any(), "bad").
					Return(uuid.Nil, errors.New("token is malformed"))
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"Unauthorized"}`,
		},
		{
			name: "subject no longer exists",
			mockSetup: func(tokener *MockTokener, users *MockUserGetter) {
				tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token", nil)
				tokener.EXPECT().GetUserID(gomock.Any(), "token").Return(userID, nil)
				users.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"User not found"}`,
		},
		{
			name: "store error",
			mockSetup: func(tokener *MockTokener, users *MockUserGetter) {
				tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token", nil)
				tokener.EXPECT().GetUserID(gomock.Any(), "token").Return(userID, nil)
				users.EXPECT().GetByID(gomock.Any(), userID).Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			tokener := NewMockTokener(ctrl)
			users := NewMockUserGetter(ctrl)
			tt.mockSetup(tokener, users)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				got := UserFromContext(r.Context())
				assert.Equal(t, user, got)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
			w := httptest.NewRecorder()

			AuthMiddleware(tokener, users)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.nextCalled, nextCalled)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestUserFromContext_NoUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, UserFromContext(req.Context()))
}
