package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/dto"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/services"
	"github.com/gofiber/fiber/v2"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// serviceErrors maps sentinel service errors to a status and a stable code.
// Message text comes from the error itself.
var serviceErrors = []errorMapping{
	{services.ErrInvalidEmail, fiber.StatusBadRequest, "auth/invalid-email"},
	{services.ErrMissingPassword, fiber.StatusBadRequest, "auth/missing-password"},
	{services.ErrWeakPassword, fiber.StatusBadRequest, "auth/weak-password"},
	{services.ErrEmailTaken, fiber.StatusConflict, "auth/email-already-in-use"},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized, "auth/invalid-credential"},
	{services.ErrInvalidToken, fiber.StatusUnauthorized, "auth/invalid-refresh-token"},
	{services.ErrUserNotFound, fiber.StatusNotFound, "auth/user-not-found"},
	{services.ErrDocumentForbidden, fiber.StatusForbidden, "document/forbidden"},
	{services.ErrDocumentInvalid, fiber.StatusBadRequest, "document/invalid"},
	{services.ErrDocumentNotFound, fiber.StatusNotFound, "document/not-found"},
	{services.ErrFactUnavailable, fiber.StatusBadGateway, "fact/unavailable"},
}

// respondError writes err as an ErrorResponse. Unknown errors become a 500
// with a generic message so internals are not leaked.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			msg := err.Error()
			if m.status >= fiber.StatusInternalServerError {
				msg = m.err.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{
				Error: true, Message: msg, Code: m.code,
			})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: fallback, Code: "internal",
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body", Code: "request/invalid-body",
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized", Code: "auth/unauthorized",
	})
}
