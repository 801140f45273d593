package service

import (
	"fmt"

	"container-tracker/internal/features/tracking/domain"
)

// Values that mark a synthesized record.
const (
	FallbackPercentage  = 25
	FallbackLastSync    = "Offline - simulated data"
	FallbackEventStatus = "Live Sync Unavailable"
	FallbackLocation    = "Carrier Network"
	unknownReason       = "unknown error"
)

// Synthesize builds a substitute record for a container whose live lookup failed.
// The single event carries reason so the failure stays diagnosable from the record alone.
func Synthesize(containerID, carrierName, reason string) domain.ContainerDetails {
	if reason == "" {
		reason = unknownReason
	}

	return domain.ContainerDetails{
		ContainerID: domain.OrPlaceholder(domain.NormalizeContainerID(containerID), domain.PlaceholderContainerID),
		Carrier:     domain.OrPlaceholder(carrierName, domain.PlaceholderCarrier),
		Vessel:      domain.PlaceholderVessel,
		Voyage:      domain.PlaceholderVoyage,
		Origin:      domain.PlaceholderOrigin,
		Destination: domain.PlaceholderDestination,
		Status:      domain.StatusInTransit,
		Percentage:  FallbackPercentage,
		ETA:         domain.PlaceholderETA,
		IsRealTime:  false,
		LastSync:    FallbackLastSync,
		Events: []domain.TrackingEvent{
			{
				Status:      FallbackEventStatus,
				Location:    FallbackLocation,
				Timestamp:   domain.PlaceholderTimestamp,
				Description: fmt.Sprintf("Live carrier data could not be retrieved (%s). Showing simulated data.", reason),
				Type:        domain.EventTypePort,
			},
		},
	}
}
