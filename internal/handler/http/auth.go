package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "github.com/vivass/storefront/pkg/errors"
	"github.com/vivass/storefront/pkg/httputil"
	"github.com/vivass/storefront/pkg/validator"

	"github.com/vivass/storefront/internal/service"
)

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	service service.AuthService
	secure  bool
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler. secure controls the
// Secure flag on the admin cookie.
func NewAuthHandler(svc service.AuthService, secure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: svc,
		secure:  secure,
		logger:  logger,
	}
}

// LoginRequest is the JSON request body for admin login.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued admin token. The same token is also set
// as an HttpOnly cookie.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<10)
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	token, err := h.service.Login(r.Context(), req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// No MaxAge: the admin stays signed in until an explicit logout.
	http.SetCookie(w, &http.Cookie{
		Name:     AdminCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: LoginResponse{Token: token}})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}
