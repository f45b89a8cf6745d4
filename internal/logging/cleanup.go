package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/models"
	"gorm.io/gorm"
)

// Retention is how long system_logs rows are kept.
const Retention = 30 * 24 * time.Hour

// StartCleanup runs a daily goroutine that deletes system_logs older than
// Retention and refresh tokens that have expired. It exits when done closes.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				now := time.Now()
				PurgeOlderThan(db, now.Add(-Retention))
				PurgeExpiredTokens(db, now)
			case <-done:
				return
			}
		}
	}()
}

// PurgeOlderThan deletes log rows with a timestamp before cutoff.
func PurgeOlderThan(db *gorm.DB, cutoff time.Time) int64 {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("log cleanup failed", "error", result.Error)
		return 0
	}
	if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected)
	}
	return result.RowsAffected
}

// PurgeExpiredTokens deletes refresh tokens whose expiry is before now.
func PurgeExpiredTokens(db *gorm.DB, now time.Time) int64 {
	result := db.Where("expires_at < ?", now).Delete(&models.RefreshToken{})
	if result.Error != nil {
		slog.Error("refresh token cleanup failed", "error", result.Error)
		return 0
	}
	if result.RowsAffected > 0 {
		slog.Info("refresh token cleanup completed", "deleted", result.RowsAffected)
	}
	return result.RowsAffected
}
