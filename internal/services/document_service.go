package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UsersCollection holds one profile document per account, keyed by account id.
const UsersCollection = "users"

var (
	ErrDocumentForbidden = errors.New("you do not have permission to access this document")
	ErrDocumentInvalid   = errors.New("document fields are invalid")
	ErrDocumentNotFound  = errors.New("document not found")
)

// ownedCollections maps each writable collection to its field validator.
// Documents in these collections are keyed by the owning account id.
var ownedCollections = map[string]func(map[string]interface{}) error{
	UsersCollection: validateProfileFields,
}

type DocumentService struct {
	db *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{db: db}
}

// Upsert writes fields under (collection, key), replacing whatever was stored
// there before. The caller must own the key.
func (s *DocumentService) Upsert(ctx context.Context, ownerID uuid.UUID, collection, key string, fields map[string]interface{}) (*models.Document, error) {
	if err := authorize(ownerID, collection, key); err != nil {
		return nil, err
	}
	if err := ownedCollections[collection](fields); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentInvalid, err)
	}

	db := s.db.WithContext(ctx)
	doc := models.Document{
		ID:         uuid.New(),
		Collection: collection,
		Key:        key,
		Fields:     datatypes.JSON(raw),
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"fields", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert document: %w", err)
	}

	return s.Get(ctx, ownerID, collection, key)
}

// Get returns the stored document. Only the owner may read it.
func (s *DocumentService) Get(ctx context.Context, ownerID uuid.UUID, collection, key string) (*models.Document, error) {
	if err := authorize(ownerID, collection, key); err != nil {
		return nil, err
	}

	var doc models.Document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_key = ?", collection, key).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return &doc, nil
}

func authorize(ownerID uuid.UUID, collection, key string) error {
	if _, ok := ownedCollections[collection]; !ok {
		return ErrDocumentForbidden
	}
	if key != ownerID.String() {
		return ErrDocumentForbidden
	}
	return nil
}

func validateProfileFields(fields map[string]interface{}) error {
	for _, name := range []string{"fullName", "email"} {
		v, ok := fields[name].(string)
		if !ok || strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s is required", ErrDocumentInvalid, name)
		}
	}
	for name := range fields {
		if name != "fullName" && name != "email" {
			return fmt.Errorf("%w: unknown field %s", ErrDocumentInvalid, name)
		}
	}
	return nil
}
