package handlers

import (
	"encoding/json"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/dto"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/identity"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/models"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DocumentHandler struct {
	documentService *services.DocumentService
}

func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upsert handles PUT /api/documents/:collection/:key
func (h *DocumentHandler) Upsert(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpsertDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	doc, err := h.documentService.Upsert(c.UserContext(), userID, c.Params("collection"), c.Params("key"), req.Fields)
	if err != nil {
		return respondError(c, err, "Failed to save document")
	}

	return c.JSON(toDocumentResponse(doc))
}

// Get handles GET /api/documents/:collection/:key
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	doc, err := h.documentService.Get(c.UserContext(), userID, c.Params("collection"), c.Params("key"))
	if err != nil {
		return respondError(c, err, "Failed to load document")
	}

	return c.JSON(toDocumentResponse(doc))
}

func toDocumentResponse(doc *models.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		Collection: doc.Collection,
		Key:        doc.Key,
		Fields:     json.RawMessage(doc.Fields),
		UpdatedAt:  doc.UpdatedAt,
	}
}
