package handlers

import (
	"context"
	"net/http"
	"time"

	pkghttp "github.com/BradenHooton/parliament/pkg/http"
)

// HealthChecker pings the backing store
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Health reports storage liveness. A nil checker means the in-memory store.
func Health(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker == nil {
			pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy", "storage": "memory"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.HealthCheck(ctx); err != nil {
			pkghttp.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "database": "down"})
			return
		}
		pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy", "database": "up"})
	}
}
