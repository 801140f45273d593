package ports

import (
	"context"
	"encoding/json"

	"container-tracker/internal/features/tracking/domain"
)

// TrackingTransport fetches the raw tracking payload for a container from a carrier API.
// Implementations return the envelope's data section on success and an error for any
// transport, protocol or envelope failure. Endpoint and authorization scheme are theirs to choose.
type TrackingTransport interface {
	Fetch(ctx context.Context, req domain.LookupRequest) (json.RawMessage, error)
}

// DetailsCache stores live tracking results for a short time.
type DetailsCache interface {
	// Get returns the cached record, or nil with no error on a miss.
	Get(ctx context.Context, containerID string) (*domain.ContainerDetails, error)
	// Save stores a record.
	Save(ctx context.Context, details domain.ContainerDetails) error
}

// TrackingService defines the primary port for container lookups. Fetch never fails: when the
// live path is unusable it returns a synthesized record with IsRealTime set to false.
type TrackingService interface {
	Fetch(ctx context.Context, containerID string) domain.ContainerDetails
}
