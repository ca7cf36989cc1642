package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/BradenHooton/parliament/internal/models"
	pkghttp "github.com/BradenHooton/parliament/pkg/http"
)

type contextKey string

const (
	// SessionContextKey is the key for storing the caller's session descriptor in context
	SessionContextKey contextKey = "session"
)

// AccountFetcher is the slice of the account store the middleware needs
type AccountFetcher interface {
	GetByLoginName(ctx context.Context, loginName string) (*models.Account, error)
}

// AuthMiddleware validates bearer tokens and injects the session descriptor into context
func AuthMiddleware(tm *TokenManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				pkghttp.WriteUnauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				pkghttp.WriteUnauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := tm.ValidateToken(parts[1])
			if err != nil {
				pkghttp.WriteUnauthorized(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), claims.Descriptor())))
		})
	}
}

// RequireRole enforces role-based access. The account is re-read so a revoked
// account loses access even though its token still verifies.
func RequireRole(accounts AccountFetcher, role string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok {
				pkghttp.WriteUnauthorized(w, "Unauthorized")
				return
			}

			account, err := accounts.GetByLoginName(r.Context(), session.LoginName)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					pkghttp.WriteUnauthorized(w, "Account no longer exists")
					return
				}
				pkghttp.WriteInternalError(w, "Internal server error")
				return
			}

			if account.Role != role {
				pkghttp.WriteForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), models.DescriptorFor(account))))
		})
	}
}

func WithSession(ctx context.Context, desc models.SessionDescriptor) context.Context {
	return context.WithValue(ctx, SessionContextKey, desc)
}

// SessionFromContext extracts the session descriptor placed by AuthMiddleware
func SessionFromContext(ctx context.Context) (models.SessionDescriptor, bool) {
	desc, ok := ctx.Value(SessionContextKey).(models.SessionDescriptor)
	return desc, ok
}
