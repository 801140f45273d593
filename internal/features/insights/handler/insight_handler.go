package handler

import (
	"container-tracker/internal/features/insights/ports"
	trackingdomain "container-tracker/internal/features/tracking/domain"

	"github.com/gofiber/fiber/v2"
)

// InsightHandler handles HTTP requests for insight generation.
type InsightHandler struct {
	service ports.InsightService
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(service ports.InsightService) *InsightHandler {
	return &InsightHandler{
		service: service,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// GenerateInsight godoc
// @Summary Generate logistics insight
// @Description Generates a risk assessment for a container record. Falls back to a canned insight when the model is unavailable.
// @Tags insights
// @Accept json
// @Produce json
// @Param details body trackingdomain.ContainerDetails true "Container details"
// @Success 200 {object} domain.AIInsight
// @Failure 400 {object} ErrorResponse
// @Router /insights [post]
func (h *InsightHandler) GenerateInsight(c *fiber.Ctx) error {
	var details trackingdomain.ContainerDetails
	if err := c.BodyParser(&details); err != nil {
		rayID, _ := c.Locals("requestid").(string)
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid container details body",
			RayID:   rayID,
		})
	}
	if details.Events == nil {
		details.Events = []trackingdomain.TrackingEvent{}
	}

	return c.JSON(h.service.Generate(c.UserContext(), details))
}
