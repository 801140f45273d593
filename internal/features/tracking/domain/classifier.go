package domain

import "strings"

// rule maps a case-insensitive substring to a result. Tables are evaluated in order; first match wins.
type rule[T any] struct {
	contains string
	result   T
}

var statusRules = []rule[Status]{
	{"TRANSIT", StatusInTransit},
	{"ON BOARD", StatusInTransit},
	{"SAILED", StatusInTransit},
	{"BOARD", StatusInTransit},
	{"GATE", StatusGateIn},
	{"LAND", StatusGateIn},
	{"ARRIV", StatusArrived},
	{"DISCH", StatusArrived},
}

var eventTypeRules = []rule[EventType]{
	{"VESSEL", EventTypeSea},
	{"SEA", EventTypeSea},
	{"SAILED", EventTypeSea},
	{"AT SEA", EventTypeSea},
	{"GATE", EventTypeLand},
	{"TRUCK", EventTypeLand},
	{"RAIL", EventTypeLand},
}

// percentageRules is a fixed heuristic, not derived from timing data.
var percentageRules = []rule[int]{
	{"DELIVERED", 100},
	{"ARRIVED", 100},
	{"DISCHARGED", 88},
	{"TRANSIT", 55},
	{"SAILED", 32},
	{"LOADED", 32},
}

const baselinePercentage = 15

func match[T any](rules []rule[T], text string, fallback T) T {
	upper := strings.ToUpper(text)
	for _, r := range rules {
		if strings.Contains(upper, r.contains) {
			return r.result
		}
	}
	return fallback
}

// ClassifyStatus maps free-text carrier status to a Status. Text that already spells a
// canonical status name (e.g. "Delayed", "GATE-IN") maps to it directly; otherwise the
// rule table applies and IN_TRANSIT is the default.
func ClassifyStatus(text string) Status {
	canonical := Status(strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToUpper(strings.TrimSpace(text))))
	if canonical.Valid() {
		return canonical
	}
	return match(statusRules, text, StatusInTransit)
}

// ClassifyEventType derives the rendering hint for an event from its text.
func ClassifyEventType(text string) EventType {
	return match(eventTypeRules, text, EventTypePort)
}

// EstimatePercentage guesses journey completion from a status text when the API omits it.
func EstimatePercentage(statusText string) int {
	return match(percentageRules, statusText, baselinePercentage)
}
