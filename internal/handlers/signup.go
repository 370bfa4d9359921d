package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/tappay/tappay/internal/logger"
	"github.com/tappay/tappay/internal/models"
	"github.com/tappay/tappay/internal/repositories"
)

// handleRe is the public handle pattern: lowercase, digits, underscore, 3-20 chars.
var handleRe = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

// Signuper defines the interface that the signup service must implement.
type Signuper interface {
	Register(ctx context.Context, name, handle, email, password string, profileImg *string) (*models.UserDB, string, error)
}

// SignupRequest represents the JSON body for user signup
// swagger:model SignupRequest
type SignupRequest struct {
	// Display name
	// required: true
	// default: Ann Example
	Name string `json:"name" validate:"required"`

	// Public handle
	// required: true
	// default: ann1
	Handle string `json:"handle" validate:"required,handle"`

	// Email
	// required: true
	// default: ann@example.com
	Email string `json:"email" validate:"required,email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required"`

	// Profile image URL
	// required: false
	ProfileImg *string `json:"profileImg"`
}

// AuthResponse represents a successful signup or login response
// swagger:model AuthResponse
type AuthResponse struct {
	// Bearer token
	Token string `json:"token"`

	// Public view of the user
	User models.PublicUser `json:"user"`
}

// SignupErrorResponse represents an error response for signup
// swagger:model SignupErrorResponse
type SignupErrorResponse struct {
	// Error message
	// default: Handle already taken
	Error string `json:"error"`
}

// NewSignupHandler returns an HTTP handler for user signup.
// @Summary Sign up a new user
// @Description Creates a new user account and returns a bearer token with the public user view. Handle and email must be unique.
// @Tags auth
// @Accept json
// @Produce json
// @Param signupRequest body handlers.SignupRequest true "User signup request"
// @Success 200 {object} handlers.AuthResponse "Token and public user view"
// @Failure 400 {object} handlers.SignupErrorResponse "Validation failure or duplicate handle/email"
// @Router /auth/signup [post]
func NewSignupHandler(svc Signuper) http.HandlerFunc {
	validate := validator.New()
	validate.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handleRe.MatchString(fl.Field().String())
	})

	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, SignupErrorResponse{Error: "Invalid request body"})
			return
		}

		if err := validate.Struct(req); err != nil {
			var validationErrors validator.ValidationErrors
			if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
				e := validationErrors[0]
				writeJSON(w, http.StatusBadRequest, SignupErrorResponse{
					Error: fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()),
				})
				return
			}
			writeJSON(w, http.StatusBadRequest, SignupErrorResponse{Error: "Invalid request body"})
			return
		}

		user, token, err := svc.Register(r.Context(), req.Name, req.Handle, req.Email, req.Password, req.ProfileImg)
		if err != nil {
			switch {
			case errors.Is(err, repositories.ErrHandleTaken):
				writeJSON(w, http.StatusBadRequest, SignupErrorResponse{Error: "Handle already taken"})
			case errors.Is(err, repositories.ErrEmailTaken):
				writeJSON(w, http.StatusBadRequest, SignupErrorResponse{Error: "Email already registered"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, SignupErrorResponse{Error: "Internal server error"})
			}
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: user.Public()})
	}
}
