package handlers

import (
	"context"
	"net/http"

	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/services"
	pkghttp "github.com/BradenHooton/parliament/pkg/http"
	"github.com/go-chi/chi/v5"
)

// AccountService defines the admin account operations
type AccountService interface {
	ListAccounts(ctx context.Context) ([]models.AccountView, error)
	Provision(ctx context.Context, legislatorID int64, loginName, secret string) (*services.ProvisionResult, error)
	RotatePassword(ctx context.Context, loginName, secret string) (*models.AccountView, error)
	Revoke(ctx context.Context, loginName string) error
}

// AccountHandler serves the admin-only account endpoints
type AccountHandler struct {
	service AccountService
}

func NewAccountHandler(service AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// ProvisionRequest creates an account for a legislator or rotates the existing one
type ProvisionRequest struct {
	LegislatorID int64  `json:"legislator_id" validate:"required,gt=0"`
	LoginName    string `json:"login_name" validate:"required,min=3,max=64"`
	Password     string `json:"password" validate:"required"`
}

type RotatePasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// ListAccountsResponse carries accounts without their secrets
type ListAccountsResponse struct {
	Accounts []models.AccountView `json:"accounts"`
	Total    int                  `json:"total"`
}

// ListAccounts returns all accounts, redacted
//
// @Summary List accounts
// @Produce json
// @Success 200 {object} ListAccountsResponse
// @Failure 403 {object} pkghttp.ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, ListAccountsResponse{Accounts: accounts, Total: len(accounts)})
}

// Provision answers 201 when an account was created and 200 when an existing one was rotated
//
// @Summary Provision a legislator account
// @Accept json
// @Param request body ProvisionRequest true "Provision request"
// @Produce json
// @Success 200 {object} services.ProvisionResult
// @Success 201 {object} services.ProvisionResult
// @Failure 400 {object} pkghttp.ErrorResponse
// @Failure 404 {object} pkghttp.ErrorResponse
// @Failure 409 {object} pkghttp.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) Provision(w http.ResponseWriter, r *http.Request) {
	var req ProvisionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.service.Provision(r.Context(), req.LegislatorID, req.LoginName, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	pkghttp.WriteJSON(w, status, result)
}

func (h *AccountHandler) RotatePassword(w http.ResponseWriter, r *http.Request) {
	loginName := chi.URLParam(r, "login")

	var req RotatePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.RotatePassword(r.Context(), loginName, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, view)
}

func (h *AccountHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Revoke(r.Context(), chi.URLParam(r, "login")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
