package handlers

import (
	"context"
	"net/http"

	"github.com/BradenHooton/parliament/internal/stats"
	pkghttp "github.com/BradenHooton/parliament/pkg/http"
)

type StatsService interface {
	Summary(ctx context.Context) (*stats.Summary, error)
}

type StatsHandler struct {
	service StatsService
}

func NewStatsHandler(service StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, summary)
}
