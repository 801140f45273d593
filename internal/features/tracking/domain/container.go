package domain

import (
	"strings"
	"unicode"
)

// Status is the closed set of shipment states a container can be in.
type Status string

const (
	// StatusInTransit is the permanent default when nothing more specific is known.
	StatusInTransit Status = "IN_TRANSIT"
	// StatusArrived indicates the container reached its destination port.
	StatusArrived Status = "ARRIVED"
	// StatusDelayed indicates the carrier reported a delay.
	StatusDelayed Status = "DELAYED"
	// StatusDischarged indicates the container was unloaded from the vessel.
	StatusDischarged Status = "DISCHARGED"
	// StatusGateIn indicates the container passed a terminal gate.
	StatusGateIn Status = "GATE_IN"
)

// Statuses lists every valid Status.
var Statuses = []Status{StatusInTransit, StatusArrived, StatusDelayed, StatusDischarged, StatusGateIn}

// Valid reports whether s belongs to the closed status set.
func (s Status) Valid() bool {
	for _, candidate := range Statuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// EventType is a rendering hint for a tracking event, not authoritative logistics data.
type EventType string

const (
	EventTypeSea  EventType = "SEA"
	EventTypeLand EventType = "LAND"
	EventTypePort EventType = "PORT"
)

// Placeholders substituted for unknown values. They are part of the API contract; keep them stable.
const (
	PlaceholderContainerID = "UNKNOWN"
	PlaceholderCarrier     = "Global Alliance Carrier"
	PlaceholderVessel      = "Pending Assignment"
	PlaceholderVoyage      = "TBD"
	PlaceholderOrigin      = "Origin Port"
	PlaceholderDestination = "Destination Port"
	PlaceholderETA         = "Pending Carrier Update"
	PlaceholderEventStatus = "Status Update"
	PlaceholderLocation    = "Unknown Location"
	PlaceholderTimestamp   = "Pending"
)

// ContainerDetails is the canonical tracking record for one container.
// Every string field is non-empty and Events is never nil.
type ContainerDetails struct {
	// ContainerID is the normalized (upper-case, whitespace-free) identifier.
	ContainerID string `json:"containerId"`
	Carrier     string `json:"carrier"`
	Vessel      string `json:"vessel"`
	Voyage      string `json:"voyage"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Status      Status `json:"status"`
	// Percentage is the estimated completion of the journey in [0,100].
	Percentage int `json:"percentage"`
	// ETA is a display string, not machine-parsed.
	ETA string `json:"eta"`
	// IsRealTime is true only when the record came from a successful live call.
	IsRealTime bool `json:"isRealTime"`
	// LastSync describes when (or whether) synchronization occurred.
	LastSync string `json:"lastSync"`
	// Events is ordered most-recent-first.
	Events []TrackingEvent `json:"events"`
}

// TrackingEvent is a single milestone in the container's journey.
type TrackingEvent struct {
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Timestamp   string    `json:"timestamp"`
	Description string    `json:"description"`
	Type        EventType `json:"type"`
}

// LookupRequest is what a tracking transport needs to query the carrier API.
type LookupRequest struct {
	ContainerID string
	Carrier     CarrierInfo
}

// NormalizeContainerID upper-cases id and strips all whitespace.
func NormalizeContainerID(id string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, id)
}

// ClampPercentage bounds p to [0,100].
func ClampPercentage(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// OrPlaceholder returns value trimmed, or placeholder when value is blank.
func OrPlaceholder(value, placeholder string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return placeholder
}
