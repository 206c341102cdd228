package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"medgpt-backend/internal/models"
	"medgpt-backend/internal/services"
	"medgpt-backend/pkg/httputil"
)

// AuthService signs users up and in.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authSvc AuthService) *AuthHandler {
	return &AuthHandler{authService: authSvc}
}

func toUserResponse(u *models.User) models.UserResponse {
	return models.UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

func respondAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUserAlreadyExists):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("ERROR [AuthHandler] %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Authentication failed due to an internal error")
	}
}

// HandleSignup handles POST /v1/auth/signup.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeAndValidate(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleLogin handles POST /v1/auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.AuthResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	})
}
