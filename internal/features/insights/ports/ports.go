package ports

import (
	"context"

	"container-tracker/internal/features/insights/domain"
	trackingdomain "container-tracker/internal/features/tracking/domain"
)

// InsightService defines the primary port for insight generation. Generate never fails:
// when the model cannot produce a valid answer it returns a canned insight.
type InsightService interface {
	Generate(ctx context.Context, details trackingdomain.ContainerDetails) domain.AIInsight
}

// InsightModel is a generative model that answers a prompt with a JSON document
// shaped like domain.AIInsight.
type InsightModel interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}
