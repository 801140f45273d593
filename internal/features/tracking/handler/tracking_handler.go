package handler

import (
	"container-tracker/internal/features/tracking/ports"

	"github.com/gofiber/fiber/v2"
)

// TrackingHandler handles HTTP requests for tracking operations.
type TrackingHandler struct {
	trackingService ports.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackingService ports.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

// GetContainer godoc
// @Summary Get container tracking details
// @Description Returns the current shipment state. isRealTime is false when the record was synthesized.
// @Tags tracking
// @Produce json
// @Param containerId path string true "Container ID"
// @Success 200 {object} domain.ContainerDetails
// @Router /tracking/{containerId} [get]
func (h *TrackingHandler) GetContainer(c *fiber.Ctx) error {
	details := h.trackingService.Fetch(c.UserContext(), c.Params("containerId"))
	return c.JSON(details)
}
