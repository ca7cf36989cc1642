// Package app assembles services, handlers and the router over a storage backend.
package app

import (
	"log/slog"
	"net/http"

	"github.com/BradenHooton/parliament/internal/auth"
	"github.com/BradenHooton/parliament/internal/config"
	"github.com/BradenHooton/parliament/internal/handlers"
	middlewareCustom "github.com/BradenHooton/parliament/internal/middleware"
	"github.com/BradenHooton/parliament/internal/routes"
	"github.com/BradenHooton/parliament/internal/services"
	pkghttp "github.com/BradenHooton/parliament/pkg/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps are the collaborators chosen by the caller rather than derived from config
type Deps struct {
	Hasher   services.PasswordHasher
	Notifier services.Notifier
	// Timing may be nil to disable login padding
	Timing *auth.TimingDelay
}

// App is the assembled service
type App struct {
	Router       http.Handler
	Guard        *services.LockoutGuard
	Provisioning *services.ProvisioningService
	Stats        *services.StatsService
}

func New(cfg *config.Config, storage *Storage, deps Deps, logger *slog.Logger) *App {
	ipConfig := &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}
	tokenManager := auth.NewTokenManager(cfg.Auth.TokenSecret)

	guard := services.NewLockoutGuard(storage.Lockouts, services.LockoutPolicy{
		Threshold: cfg.Lockout.Threshold,
		Duration:  cfg.Lockout.Duration,
	}, logger)

	authService := services.NewAuthService(storage.Accounts, guard, deps.Hasher, tokenManager, deps.Timing, logger, cfg.Server.Env)
	provisioning := services.NewProvisioningService(storage.Accounts, storage.Legislators, deps.Hasher, deps.Notifier, logger)
	roster := services.NewRosterService(storage.Legislators, storage.Parties, logger)
	sessions := services.NewSessionService(storage.Sessions, storage.Legislators, logger)
	statsService := services.NewStatsService(storage.Legislators, storage.Parties, storage.Sessions, logger)
	profile := services.NewProfileService(storage.Legislators, statsService, logger)

	h := routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService, ipConfig, logger),
		Profile:     handlers.NewProfileHandler(profile),
		Accounts:    handlers.NewAccountHandler(provisioning),
		Legislators: handlers.NewLegislatorHandler(roster, statsService),
		Parties:     handlers.NewPartyHandler(roster),
		Sessions:    handlers.NewSessionHandler(sessions),
		Stats:       handlers.NewStatsHandler(statsService),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(middlewareCustom.DefaultCORSConfig(cfg.Server.AllowedOrigins)))
	router.Use(middlewareCustom.SecureLogger(logger, ipConfig))
	router.Use(middleware.Recoverer)

	routes.RegisterRoutes(router, h, tokenManager, storage.Accounts, middlewareCustom.RateLimitConfig{
		RequestsPerMinute: cfg.Auth.LoginRatePerMinute,
		IPConfig:          ipConfig,
	})
	router.Get("/health", handlers.Health(storage.Health))

	return &App{
		Router:       router,
		Guard:        guard,
		Provisioning: provisioning,
		Stats:        statsService,
	}
}
