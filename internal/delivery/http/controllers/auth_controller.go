package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "geoevents/internal/delivery/http/helpers"
	"geoevents/internal/domain"
)

const (
	actionRegister = "register"
	actionLogin    = "login"
)

// AuthRequest is the request body for POST /auth.
type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=register login"`
}

// Validate implements Validator.
func (a AuthRequest) Validate() []string {
	return h.ValidateStruct(a)
}

// AuthResponse is returned by a successful register or login.
type AuthResponse struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Authenticate godoc
// @Summary Register or log in
// @Description Registers a new user or logs an existing one in, depending on action. The username is derived from the email local part. The returned JWT carries userId and expires after one hour.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body AuthRequest true "Credentials and action"
// @Success 200 {object} AuthResponse "login succeeded"
// @Success 201 {object} AuthResponse "user registered"
// @Failure 400 {object} helpers.APIError "invalid body or user already exists"
// @Failure 401 {object} helpers.APIError "invalid password"
// @Failure 404 {object} helpers.APIError "user not found"
// @Failure 500 {object} helpers.APIError "internal_error"
// @Router /auth [post]
func (c *AuthController) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	var (
		result *domain.AuthResult
		err    error
		status = http.StatusOK
	)
	switch req.Action {
	case actionRegister:
		result, err = c.Service.Register(r.Context(), req.Email, req.Password)
		status = http.StatusCreated
	case actionLogin:
		result, err = c.Service.Login(r.Context(), req.Email, req.Password)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "User already exists")
		case errors.Is(err, domain.ErrUserNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "User not found")
		case errors.Is(err, domain.ErrInvalidPassword):
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Invalid password")
		default:
			writeServiceError(w, r, c.Logger, err)
		}
		return
	}

	h.WriteJSON(w, status, AuthResponse{
		Token:    result.Token,
		Email:    result.User.Email,
		Username: result.User.Username,
	})
}
