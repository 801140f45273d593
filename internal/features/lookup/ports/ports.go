package ports

import (
	"context"

	insightdomain "container-tracker/internal/features/insights/domain"
	"container-tracker/internal/features/lookup/domain"
	trackingdomain "container-tracker/internal/features/tracking/domain"
)

// LookupService defines the primary port for a full container lookup.
type LookupService interface {
	Run(ctx context.Context, containerID string) domain.LookupResult
}

// Tracker produces the tracking record for a container. It must not fail.
type Tracker interface {
	Fetch(ctx context.Context, containerID string) trackingdomain.ContainerDetails
}

// Advisor produces an insight for a tracking record. It must not fail.
type Advisor interface {
	Generate(ctx context.Context, details trackingdomain.ContainerDetails) insightdomain.AIInsight
}
