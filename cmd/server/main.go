package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/config"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/database"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/logging"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/server"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if !cfg.UsesSQLite() && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}
	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set; fun facts will be unavailable")
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// ERROR+ records are also batched into system_logs
	dbLogHandler := logging.AttachDB(database.DB)

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	facts, err := services.NewFactService(context.Background(), cfg)
	if err != nil {
		slog.Error("fun fact service init failed", "error", err)
		os.Exit(1)
	}

	// Sentry error tracking
	var middleware []fiber.Handler
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			middleware = append(middleware, sentryfiber.New(sentryfiber.Options{
				Repanic:         true,
				WaitForDelivery: false,
			}))
		}
	}

	app := server.NewApp(cfg, server.Deps{
		DB:         database.DB,
		Facts:      facts,
		Ping:       database.Ping,
		Middleware: middleware,
		AccessLog:  true,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "db_driver", cfg.DBDriver, "gemini_transport", cfg.GeminiTransport)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
