package domain

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyResponse is returned when the model answers with no text.
	ErrEmptyResponse = errors.New("model returned an empty response")
	// ErrModelUnavailable is returned by a model that is not configured.
	ErrModelUnavailable = errors.New("insight model unavailable")
)

// RiskLevel grades the delivery risk of a shipment.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskLevels lists every valid RiskLevel.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// RecommendationCount is the number of recommendations an insight carries.
const RecommendationCount = 3

// AIInsight is a generated risk assessment for one container.
type AIInsight struct {
	Summary    string    `json:"summary"`
	Prediction string    `json:"prediction"`
	RiskLevel  RiskLevel `json:"riskLevel"`
	// Recommendations holds exactly RecommendationCount entries.
	Recommendations []string `json:"recommendations"`
}

// ParseRiskLevel normalizes s to a RiskLevel. ok is false for values outside the set.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	level := RiskLevel(strings.ToUpper(strings.TrimSpace(s)))
	for _, candidate := range RiskLevels {
		if level == candidate {
			return level, true
		}
	}
	return level, false
}
