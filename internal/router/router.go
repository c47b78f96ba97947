package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/career-prep-api/internal/config"
	"github.com/noah-isme/career-prep-api/internal/handler"
	"github.com/noah-isme/career-prep-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	PredictionHandler   *handler.PredictionHandler
	ReadinessHandler    *handler.ReadinessHandler
	ExperimentHandler   *handler.ExperimentHandler
	JWTMiddleware       fiber.Handler
	PredictionRateLimit fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	v2 := app.Group("/api/v2", jwtMiddleware)
	interviews := v2.Group("/interviews")

	if deps.PredictionHandler != nil {
		var guards []fiber.Handler
		if deps.PredictionRateLimit != nil {
			guards = append(guards, deps.PredictionRateLimit)
		}
		deps.PredictionHandler.Register(v2.Group("/predictions"), guards...)
		deps.PredictionHandler.RegisterInterviewRoutes(interviews)
	}

	if deps.ReadinessHandler != nil {
		deps.ReadinessHandler.Register(interviews)
	}

	if deps.ExperimentHandler != nil {
		deps.ExperimentHandler.Register(v2.Group("/experiments"))
	}
}
