package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Document is a keyed JSON record inside a named collection.
// (collection, key) is unique; writes overwrite Fields.
type Document struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Collection string         `gorm:"size:64;not null;uniqueIndex:idx_documents_collection_key" json:"collection"`
	Key        string         `gorm:"column:doc_key;size:128;not null;uniqueIndex:idx_documents_collection_key" json:"key"`
	Fields     datatypes.JSON `gorm:"type:jsonb" json:"fields"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
