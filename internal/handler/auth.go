package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopmate/shopmate-go/internal/middleware"
	"github.com/shopmate/shopmate-go/internal/model"
	"github.com/shopmate/shopmate-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication and profile updates.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /api/v1/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			// Not an error status: the storefront shows the message and
			// redirects to login.
			writeJSON(w, http.StatusOK, failure("Already Registered Please Login"))
		case isValidationError(err):
			writeJSON(w, http.StatusBadRequest, failure(err.Error()))
		default:
			h.internalError(w, "register", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, model.Envelope{
		Success: true,
		Message: "User Registered Successfully",
		User:    &user,
	})
}

// HandleLogin handles POST /api/v1/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, failure(err.Error()))
		case errors.Is(err, service.ErrUnknownEmail):
			writeJSON(w, http.StatusOK, failure("Email is not registered"))
		case errors.Is(err, service.ErrInvalidPassword):
			writeJSON(w, http.StatusOK, failure("Invalid Password"))
		default:
			h.internalError(w, "login", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.Envelope{
		Success: true,
		Message: "Login Successful",
		User:    &user,
		Token:   token,
	})
}

// HandleForgotPassword handles POST /api/v1/auth/forgot-password requests.
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongCredentials):
			writeJSON(w, http.StatusOK, failure("Wrong Email Or Answer"))
		case isValidationError(err):
			writeJSON(w, http.StatusBadRequest, failure(err.Error()))
		default:
			h.internalError(w, "forgot-password", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.Envelope{
		Success: true,
		Message: "Password Reset Successfully",
	})
}

// HandleUpdateProfile handles PUT /api/v1/auth/profile requests.
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, failure("not signed in"))
		return
	}

	var req model.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			writeJSON(w, http.StatusUnauthorized, failure(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, failure(err.Error()))
		case isValidationError(err):
			writeJSON(w, http.StatusBadRequest, failure(err.Error()))
		default:
			h.internalError(w, "update-profile", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.Envelope{
		Success:     true,
		Message:     "Profile Updated Successfully",
		UpdatedUser: &user,
	})
}

// HandleMe handles GET /api/v1/auth/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, failure("not signed in"))
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, failure(err.Error()))
			return
		}
		h.internalError(w, "me", err)
		return
	}

	writeJSON(w, http.StatusOK, model.Envelope{Success: true, User: &user})
}

// internalError logs the cause server-side and answers with a generic
// message; raw error detail never reaches the client.
func (h *AuthHandler) internalError(w http.ResponseWriter, op string, err error) {
	slog.Error("auth handler error", "op", op, "error", err)
	writeJSON(w, http.StatusInternalServerError, failure("internal server error"))
}

// isValidationError reports whether err is one of the input-validation
// sentinels whose message is safe to echo to the client.
func isValidationError(err error) bool {
	for _, target := range []error{
		service.ErrNameRequired,
		service.ErrEmailRequired,
		service.ErrPasswordRequired,
		service.ErrPhoneRequired,
		service.ErrAddressRequired,
		service.ErrAnswerRequired,
		service.ErrNewPasswordRequired,
		service.ErrInvalidInput,
		service.ErrCurrentPasswordRequired,
		service.ErrIncorrectPassword,
		service.ErrInvalidPhone,
		service.ErrIncompletePasswordChange,
		service.ErrPasswordMismatch,
		service.ErrPasswordTooShort,
		service.ErrSamePassword,
		service.ErrNoChanges,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
