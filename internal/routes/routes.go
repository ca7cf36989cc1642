package routes

import (
	"github.com/BradenHooton/parliament/internal/auth"
	"github.com/BradenHooton/parliament/internal/handlers"
	"github.com/BradenHooton/parliament/internal/middleware"
	"github.com/BradenHooton/parliament/internal/models"
	"github.com/go-chi/chi/v5"
)

// Handlers bundles every HTTP handler the router serves
type Handlers struct {
	Auth        *handlers.AuthHandler
	Profile     *handlers.ProfileHandler
	Accounts    *handlers.AccountHandler
	Legislators *handlers.LegislatorHandler
	Parties     *handlers.PartyHandler
	Sessions    *handlers.SessionHandler
	Stats       *handlers.StatsHandler
}

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	h Handlers,
	tokenManager *auth.TokenManager,
	accounts auth.AccountFetcher,
	loginLimit middleware.RateLimitConfig,
) {
	// Public routes - no authentication required
	router.With(middleware.RateLimitByIP(loginLimit)).Post("/auth/login", h.Auth.Login)

	router.Get("/legislators", h.Legislators.ListLegislators)
	router.Get("/legislators/{id}", h.Legislators.GetLegislator)
	router.Get("/legislators/{id}/attendance", h.Legislators.Attendance)
	router.Get("/parties", h.Parties.ListParties)
	router.Get("/parties/{id}", h.Parties.GetParty)
	router.Get("/parties/{id}/members", h.Parties.Members)
	router.Get("/sessions", h.Sessions.ListSessions)
	router.Get("/sessions/{id}", h.Sessions.GetSession)
	router.Get("/statistics", h.Stats.Statistics)

	// Protected routes - authentication required
	router.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(tokenManager))

		r.Post("/auth/logout", h.Auth.Logout)
		r.Get("/me", h.Profile.Me)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(accounts, models.RoleAdmin))

			r.Get("/accounts", h.Accounts.ListAccounts)
			r.Post("/accounts", h.Accounts.Provision)
			r.Put("/accounts/{login}/password", h.Accounts.RotatePassword)
			r.Delete("/accounts/{login}", h.Accounts.Revoke)

			r.Post("/legislators", h.Legislators.CreateLegislator)
			r.Put("/legislators/{id}", h.Legislators.UpdateLegislator)
			r.Delete("/legislators/{id}", h.Legislators.DeleteLegislator)

			r.Post("/parties", h.Parties.CreateParty)
			r.Put("/parties/{id}", h.Parties.UpdateParty)
			r.Delete("/parties/{id}", h.Parties.DeleteParty)

			r.Post("/sessions", h.Sessions.CreateSession)
			r.Put("/sessions/{id}", h.Sessions.UpdateSession)
			r.Delete("/sessions/{id}", h.Sessions.DeleteSession)
			r.Put("/sessions/{id}/attendance", h.Sessions.RecordAttendance)
		})
	})
}
