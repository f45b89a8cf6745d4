package logging

import (
	"log/slog"
	"os"

	"gorm.io/gorm"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(slog.New(stdoutHandler()))
}

// AttachDB re-installs the default logger so ERROR+ records are also
// persisted. The caller must Stop the returned handler on shutdown.
func AttachDB(db *gorm.DB) *DBHandler {
	dbHandler := NewDBHandler(db)
	slog.SetDefault(slog.New(NewMultiHandler(stdoutHandler(), dbHandler)))
	return dbHandler
}

func stdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}
