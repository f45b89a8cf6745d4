package handlers

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/dto"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/services"
	"github.com/gofiber/fiber/v2"
)

// FactFetcher is satisfied by *services.FactService.
type FactFetcher interface {
	Fetch(ctx context.Context) (string, error)
}

type FactHandler struct {
	facts FactFetcher
}

func NewFactHandler(facts FactFetcher) *FactHandler {
	return &FactHandler{facts: facts}
}

// Create handles POST /api/facts. 200 carries a fact, 204 means the
// provider answered without one, 502 means the provider failed.
func (h *FactHandler) Create(c *fiber.Ctx) error {
	fact, err := h.facts.Fetch(c.UserContext())
	if errors.Is(err, services.ErrNoFact) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if err != nil {
		return respondError(c, err, "Failed to fetch fun fact")
	}

	return c.JSON(dto.FactResponse{Fact: fact})
}
