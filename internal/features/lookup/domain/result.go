package domain

import (
	insightdomain "container-tracker/internal/features/insights/domain"
	trackingdomain "container-tracker/internal/features/tracking/domain"
)

// LookupResult pairs a container's tracking record with the insight generated from it.
type LookupResult struct {
	Details trackingdomain.ContainerDetails `json:"details"`
	Insight insightdomain.AIInsight        `json:"insight"`
}
