package handler

import (
	"trivia-harvester/internal/config"
	"trivia-harvester/internal/metrics"
	"trivia-harvester/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	health "github.com/hellofresh/health-go/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp wires the status, question, health and metrics routes.
func NewApp(cfg config.ServerConfig, status *StatusHandler, h *health.Health) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	app.Get("/healthz", adaptor.HTTPHandler(h.Handler()))

	api := app.Group("/api")
	api.Get("/status", status.GetStatus)
	api.Get("/questions", status.GetQuestions)

	return app
}
