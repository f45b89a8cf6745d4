// Package server assembles the Fiber application shared by cmd/server and
// the HTTP-level tests.
package server

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/config"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/routes"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

type Deps struct {
	DB    *gorm.DB
	Facts handlers.FactFetcher
	Ping  func() error
	// Middleware runs before the built-in stack (e.g. Sentry).
	Middleware []fiber.Handler
	// AccessLog enables the Fiber request logger.
	AccessLog bool
}

func NewApp(cfg *config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	for _, mw := range deps.Middleware {
		app.Use(mw)
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	if deps.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
		}))
	}
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	ping := deps.Ping
	if ping == nil {
		ping = func() error {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.Ping()
		}
	}

	routes.Setup(app, cfg, routes.Handlers{
		Auth:     handlers.NewAuthHandler(services.NewAuthService(deps.DB, cfg)),
		Health:   handlers.NewHealthHandler(ping),
		Document: handlers.NewDocumentHandler(services.NewDocumentService(deps.DB)),
		Fact:     handlers.NewFactHandler(deps.Facts),
		Logs:     handlers.NewSystemLogHandler(deps.DB),
	})

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
