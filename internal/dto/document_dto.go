package dto

import (
	"encoding/json"
	"time"
)

type UpsertDocumentRequest struct {
	Fields map[string]interface{} `json:"fields"`
}

type DocumentResponse struct {
	Collection string          `json:"collection"`
	Key        string          `json:"key"`
	Fields     json.RawMessage `json:"fields"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
