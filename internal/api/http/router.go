package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parking-service/internal/api/http/handlers"
	"github.com/spec-kit/parking-service/internal/auth"
	"github.com/spec-kit/parking-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Parking        *handlers.ParkingHandler
	Spots          *handlers.SpotsHandler
	Tickets        *handlers.TicketsHandler
	Operators      *handlers.OperatorsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/operators/login", cfg.Operators.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireOperator())
	authProtected.Post("/password/change", cfg.Operators.ChangePassword)
	authGroup.Post("/operators/register",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.OperatorRoleAdmin),
		cfg.Operators.Register,
	)

	terminal := app.Group("/parking", cfg.AuthMiddleware.Handle, auth.RequireOperator())
	terminal.Post("/entries", cfg.Parking.Enter)
	terminal.Post("/exits", cfg.Parking.Exit)

	spots := app.Group("/spots", cfg.AuthMiddleware.Handle, auth.RequireOperator())
	spots.Get("/availability", cfg.Spots.Availability)
	spots.Get("/next", cfg.Spots.Next)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireOperator())
	tickets.Get("/", cfg.Tickets.List)
}
