package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/caelum-portal/internal/api/http/handlers"
	"github.com/spec-kit/caelum-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Admin          *handlers.AdminHandler
	Pages          *handlers.PagesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Pages are registered last as a catch-all.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/logout", cfg.Users.Logout)
	authGroup.Post("/logout", cfg.Users.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.RequireUser("Not authenticated"), cfg.Users.Me)

	adminGroup := api.Group("/admin")
	adminGroup.Post("/login", cfg.Admin.Login)
	adminGroup.Post("/logout", cfg.Admin.Logout)
	adminGroup.Get("/stats", cfg.AuthMiddleware.RequireAdmin("Admin authentication required"), cfg.Admin.Stats)

	app.Get("/*", cfg.Pages.Serve)
}
