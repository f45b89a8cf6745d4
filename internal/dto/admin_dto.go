package dto

import "github.com/ahmetcoskunkizilkaya/trekpoint/internal/models"

type SystemLogListResponse struct {
	Logs  []models.SystemLog `json:"logs"`
	Count int                `json:"count"`
}

type PurgeLogsResponse struct {
	Deleted int64 `json:"deleted"`
}
