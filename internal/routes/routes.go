package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/config"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Document *handlers.DocumentHandler
	Fact     *handlers.FactHandler
	Logs     *handlers.SystemLogHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")
	if cfg.APIRateLimit > 0 {
		api.Use(rateLimit(cfg.APIRateLimit))
	}

	api.Get("/health", h.Health.Check)

	// Auth gets its own, stricter per-IP budget.
	auth := api.Group("/auth")
	if cfg.AuthRateLimit > 0 {
		auth.Use(rateLimit(cfg.AuthRateLimit))
	}
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
	auth.Delete("/account", middleware.JWTProtected(cfg), h.Auth.DeleteAccount)

	docs := api.Group("/documents", middleware.JWTProtected(cfg))
	docs.Put("/:collection/:key", h.Document.Upsert)
	docs.Get("/:collection/:key", h.Document.Get)

	api.Post("/facts", middleware.JWTProtected(cfg), h.Fact.Create)

	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(cfg))
	admin.Get("/logs", h.Logs.List)
	admin.Delete("/logs", h.Logs.Purge)
}

func rateLimit(perMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               perMinute,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}
