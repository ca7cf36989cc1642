package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/BradenHooton/parliament/internal/auth"
	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/services"
	pkghttp "github.com/BradenHooton/parliament/pkg/http"
)

// AuthServiceInterface defines the interface for auth business logic
type AuthServiceInterface interface {
	Login(ctx context.Context, loginName, secret string) (*services.LoginResult, error)
	Logout(ctx context.Context, desc models.SessionDescriptor) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	service  AuthServiceInterface
	ipConfig *pkghttp.IPConfig
	logger   *slog.Logger
}

func NewAuthHandler(service AuthServiceInterface, ipConfig *pkghttp.IPConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		ipConfig: ipConfig,
		logger:   logger,
	}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	LoginName string `json:"login_name" validate:"required,max=64"`
	Password  string `json:"password" validate:"required,max=128"`
}

// Login handles credential login
// @Summary Login
// @Accept json
// @Param request body LoginRequest true "Login request"
// @Produce json
// @Success 200 {object} services.LoginResult
// @Failure 400 {object} pkghttp.ErrorResponse
// @Failure 401 {object} pkghttp.ErrorResponse
// @Failure 429 {object} pkghttp.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.service.Login(r.Context(), req.LoginName, req.Password)
	if err != nil {
		if h.logger != nil {
			h.logger.Debug("login rejected", slog.String("client_ip", pkghttp.ExtractClientIP(r, h.ipConfig)))
		}
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, result)
}

// Logout discards the caller's session. Tokens stay valid until the secret rotates.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		pkghttp.WriteUnauthorized(w, "Unauthorized")
		return
	}

	if err := h.service.Logout(r.Context(), session); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
