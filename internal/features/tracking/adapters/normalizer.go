package adapter

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"container-tracker/internal/features/tracking/domain"
)

// Source key names per canonical field, in priority order.
var (
	containerNumberKeys = []string{"container_number", "containerNumber", "container_no", "containerNo", "container_id", "containerId", "number"}
	carrierKeys         = []string{"carrier_name", "carrierName", "carrier", "shipping_line", "shippingLine"}
	vesselKeys          = []string{"vessel_name", "vesselName", "vessel"}
	voyageKeys          = []string{"voyage_number", "voyageNumber", "voyage_no", "voyage"}
	originKeys          = []string{"pol_name", "port_of_loading", "origin", "origin_port", "pol"}
	destinationKeys     = []string{"pod_name", "port_of_discharge", "destination", "destination_port", "pod"}
	statusKeys          = []string{"status", "current_status", "container_status", "last_status", "statusText"}
	percentageKeys      = []string{"progress_percentage", "percentage", "progress"}
	etaKeys             = []string{"eta", "estimated_arrival", "eta_date", "pod_eta"}
	eventListKeys       = []string{"events", "tracking_events", "moves", "history"}

	eventStatusKeys      = []string{"status", "event", "event_name", "description"}
	eventLocationKeys    = []string{"location", "location_name", "port", "place"}
	eventTimestampKeys   = []string{"event_date", "date", "timestamp", "time", "actual_time"}
	eventDescriptionKeys = []string{"description", "details", "remark"}
)

// record is one decoded JSON object.
type record map[string]any

// Normalize extracts a ContainerDetails from a tracking payload of unknown shape.
//
// The payload may be the record itself, a singleton array holding it, or an object that wraps
// it under "tracking" or "data". Candidates are tried in that order ("tracking", "data", then
// the top level) and the first one exposing a container number wins. containerID and carrier
// supply defaults. ok is false when no candidate qualifies.
//
// The result is not yet marked live; the caller sets IsRealTime and LastSync.
func Normalize(payload json.RawMessage, containerID string, carrier domain.CarrierInfo) (domain.ContainerDetails, bool) {
	root, ok := decodeRecord(payload)
	if !ok {
		return domain.ContainerDetails{}, false
	}

	src, ok := selectCandidate(root)
	if !ok {
		return domain.ContainerDetails{}, false
	}

	id := domain.NormalizeContainerID(src.firstString(containerNumberKeys...))
	if id == "" {
		id = domain.OrPlaceholder(containerID, domain.PlaceholderContainerID)
	}

	statusText := src.firstString(statusKeys...)

	percentage, found := src.firstPercentage(percentageKeys...)
	if !found {
		percentage = domain.EstimatePercentage(statusText)
	}

	return domain.ContainerDetails{
		ContainerID: id,
		Carrier:     domain.OrPlaceholder(src.firstString(carrierKeys...), domain.OrPlaceholder(carrier.Name, domain.PlaceholderCarrier)),
		Vessel:      domain.OrPlaceholder(src.firstString(vesselKeys...), domain.PlaceholderVessel),
		Voyage:      domain.OrPlaceholder(src.firstString(voyageKeys...), domain.PlaceholderVoyage),
		Origin:      domain.OrPlaceholder(src.firstString(originKeys...), domain.PlaceholderOrigin),
		Destination: domain.OrPlaceholder(src.firstString(destinationKeys...), domain.PlaceholderDestination),
		Status:      domain.ClassifyStatus(statusText),
		Percentage:  domain.ClampPercentage(percentage),
		ETA:         domain.OrPlaceholder(src.firstString(etaKeys...), domain.PlaceholderETA),
		Events:      mapEvents(src.firstList(eventListKeys...)),
	}, true
}

func decodeRecord(payload json.RawMessage) (record, bool) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return asRecord(v)
}

// asRecord accepts an object, or an array whose first element is an object.
func asRecord(v any) (record, bool) {
	switch t := v.(type) {
	case map[string]any:
		return record(t), true
	case []any:
		if len(t) == 0 {
			return nil, false
		}
		return asRecord(t[0])
	default:
		return nil, false
	}
}

func selectCandidate(root record) (record, bool) {
	for _, wrapper := range []string{"tracking", "data"} {
		if nested, ok := asRecord(root[wrapper]); ok && nested.hasContainerNumber() {
			return nested, true
		}
	}
	if root.hasContainerNumber() {
		return root, true
	}
	return nil, false
}

func (r record) hasContainerNumber() bool {
	return r.firstString(containerNumberKeys...) != ""
}

// firstString returns the first non-empty scalar value under keys, stringified.
func (r record) firstString(keys ...string) string {
	for _, key := range keys {
		if s := scalarString(r[key]); s != "" {
			return s
		}
	}
	return ""
}

// firstPercentage returns the first value under keys that parses as a number, rounded and
// bounded to [0,100]. Numeric strings, with or without a trailing "%", are accepted.
func (r record) firstPercentage(keys ...string) (int, bool) {
	for _, key := range keys {
		var raw string
		switch t := r[key].(type) {
		case json.Number:
			raw = t.String()
		case string:
			raw = strings.TrimSuffix(strings.TrimSpace(t), "%")
		default:
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		return int(math.Round(math.Max(0, math.Min(100, f)))), true
	}
	return 0, false
}

func (r record) firstList(keys ...string) []any {
	for _, key := range keys {
		if list, ok := r[key].([]any); ok {
			return list
		}
	}
	return nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func mapEvents(items []any) []domain.TrackingEvent {
	events := make([]domain.TrackingEvent, 0, len(items))
	for _, item := range items {
		src, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ev := record(src)

		status := domain.OrPlaceholder(ev.firstString(eventStatusKeys...), domain.PlaceholderEventStatus)
		description := domain.OrPlaceholder(ev.firstString(eventDescriptionKeys...), status)

		events = append(events, domain.TrackingEvent{
			Status:      status,
			Location:    domain.OrPlaceholder(ev.firstString(eventLocationKeys...), domain.PlaceholderLocation),
			Timestamp:   domain.OrPlaceholder(ev.firstString(eventTimestampKeys...), domain.PlaceholderTimestamp),
			Description: description,
			Type:        domain.ClassifyEventType(status + " " + description),
		})
	}
	return events
}
