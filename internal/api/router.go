package api

import (
	"net/http"

	"github.com/Jarecamang/ParkingPassport/internal/api/handlers"
	"github.com/Jarecamang/ParkingPassport/internal/api/middleware"
	"github.com/Jarecamang/ParkingPassport/internal/config"
	"github.com/Jarecamang/ParkingPassport/internal/ratelimit"
	"github.com/Jarecamang/ParkingPassport/internal/service"
	"github.com/Jarecamang/ParkingPassport/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	vehicleHandler := handlers.NewVehicleHandler(services.Vehicle)
	feedHandler := handlers.NewFeedHandler(hub)

	loginLimiter := ratelimit.New(cfg.LoginRateWindow, cfg.LoginRateMax)
	passwordLimiter := ratelimit.New(cfg.PasswordRateWindow, cfg.PasswordRateMax)

	r.Route("/api", func(r chi.Router) {
		r.Route("/admin", func(r chi.Router) {
			r.With(middleware.RateLimit(loginLimiter, "Too many login attempts, please try again after 15 minutes")).
				Post("/login", authHandler.Login)
			r.Get("/settings", authHandler.Settings)
			r.Get("/auth-status", authHandler.AuthStatus)

			// Protected admin routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/logout", authHandler.Logout)
				r.With(middleware.RateLimit(passwordLimiter, "Too many password change attempts, please try again after an hour")).
					Put("/password", authHandler.ChangePassword)
				r.Get("/search-feed", feedHandler.Handle)
			})
		})

		r.Route("/vehicles", func(r chi.Router) {
			// Resident-facing plate check, no auth, always audited.
			r.Get("/plate/{plate}", vehicleHandler.Lookup)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/", vehicleHandler.List)
				r.Get("/{id}", vehicleHandler.Get)
				r.Post("/", vehicleHandler.Create)
				r.Put("/{id}", vehicleHandler.Update)
				r.Delete("/{id}", vehicleHandler.Delete)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Get("/search-history", vehicleHandler.History)
		})
	})

	return r
}
