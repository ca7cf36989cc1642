package handlers

import (
	"context"
	"net/http"

	"github.com/BradenHooton/parliament/internal/auth"
	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/services"
	pkghttp "github.com/BradenHooton/parliament/pkg/http"
)

type ProfileService interface {
	Me(ctx context.Context, desc models.SessionDescriptor) (*services.Profile, error)
}

type ProfileHandler struct {
	service ProfileService
}

func NewProfileHandler(service ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Me returns the caller's session, own legislator record and session-derived attendance
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		pkghttp.WriteUnauthorized(w, "Unauthorized")
		return
	}

	profile, err := h.service.Me(r.Context(), session)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, profile)
}
