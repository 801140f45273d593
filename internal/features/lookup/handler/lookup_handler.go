package handler

import (
	"container-tracker/internal/features/lookup/ports"

	"github.com/gofiber/fiber/v2"
)

// LookupHandler handles HTTP requests for combined tracking and insight lookups.
type LookupHandler struct {
	service ports.LookupService
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(service ports.LookupService) *LookupHandler {
	return &LookupHandler{
		service: service,
	}
}

// Lookup godoc
// @Summary Track a container and assess it
// @Description Fetches tracking data and the generated insight for a container in one call
// @Tags lookup
// @Produce json
// @Param containerId path string true "Container ID"
// @Success 200 {object} domain.LookupResult
// @Router /lookup/{containerId} [get]
func (h *LookupHandler) Lookup(c *fiber.Ctx) error {
	return c.JSON(h.service.Run(c.UserContext(), c.Params("containerId")))
}
