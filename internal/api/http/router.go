package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/rentcar-service/internal/api/http/handlers"
	"github.com/spec-kit/rentcar-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Users   *handlers.UsersHandler
	Orders  *handlers.OrdersHandler
	Contact *handlers.ContactHandler
	Stats   *handlers.StatsHandler
	Metrics *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.Post("/register", cfg.Users.Register)
	app.Post("/login", cfg.Users.Login)
	app.Post("/contact", cfg.Contact.Submit)

	api := app.Group("/api")
	api.Post("/orders", cfg.Orders.Create)
	api.Get("/orders/:userName", cfg.Orders.ListForUser)
	api.Get("/user/:email", cfg.Users.Profile)
	api.Get("/stats", cfg.Stats.Get)
	api.Get("/online-users", cfg.Users.ListOnline)
	api.Get("/all-users", cfg.Users.ListAll)
	api.Get("/all-orders", cfg.Orders.ListAll)
	api.Get("/all-messages", cfg.Contact.ListAll)
}
