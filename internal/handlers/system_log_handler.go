package handlers

import (
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/dto"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/logging"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 200
)

// SystemLogHandler exposes the persisted ERROR+ logs to admins.
type SystemLogHandler struct {
	db *gorm.DB
}

func NewSystemLogHandler(db *gorm.DB) *SystemLogHandler {
	return &SystemLogHandler{db: db}
}

// List handles GET /api/admin/logs?level=ERROR&action=...&limit=50.
func (h *SystemLogHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultLogLimit)
	if limit <= 0 || limit > maxLogLimit {
		limit = defaultLogLimit
	}

	q := h.db.WithContext(c.UserContext()).Order("timestamp DESC").Limit(limit)
	if level := strings.ToUpper(c.Query("level")); level != "" {
		q = q.Where("level = ?", level)
	}
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	var logs []models.SystemLog
	if err := q.Find(&logs).Error; err != nil {
		return respondError(c, err, "Failed to load logs")
	}
	return c.JSON(dto.SystemLogListResponse{Logs: logs, Count: len(logs)})
}

// Purge handles DELETE /api/admin/logs?before=<RFC3339>. Without before it
// applies the standard retention window.
func (h *SystemLogHandler) Purge(c *fiber.Ctx) error {
	cutoff := time.Now().Add(-logging.Retention)
	if before := c.Query("before"); before != "" {
		t, err := time.Parse(time.RFC3339, before)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "before must be an RFC3339 timestamp", Code: "request/invalid-query",
			})
		}
		cutoff = t
	}

	deleted := logging.PurgeOlderThan(h.db.WithContext(c.UserContext()), cutoff)
	return c.JSON(dto.PurgeLogsResponse{Deleted: deleted})
}
