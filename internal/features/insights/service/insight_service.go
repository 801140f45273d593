package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"container-tracker/internal/core/config"
	"container-tracker/internal/core/logger"
	"container-tracker/internal/features/insights/domain"
	"container-tracker/internal/features/insights/ports"
	trackingdomain "container-tracker/internal/features/tracking/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrInvalidInsight is returned when the model's answer does not match the insight shape.
var ErrInvalidInsight = errors.New("model response does not match the insight shape")

// DefaultTimeout bounds a generation when none is configured.
const DefaultTimeout = 20 * time.Second

// promptEvents is how many of the most recent events are embedded in the prompt.
const promptEvents = 3

const insightSchemaURL = "https://container-tracker.local/schemas/insight.schema.json"

const insightSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["summary", "prediction", "riskLevel", "recommendations"],
	"properties": {
		"summary": {"type": "string", "pattern": "\\S"},
		"prediction": {"type": "string", "pattern": "\\S"},
		"riskLevel": {"enum": ["LOW", "MEDIUM", "HIGH"]},
		"recommendations": {
			"type": "array",
			"minItems": 3,
			"items": {"type": "string", "pattern": "\\S"}
		}
	}
}`

var promptTemplate = template.Must(template.New("insight").Parse(`You are a senior maritime logistics analyst.
Provide a risk assessment for container {{.ContainerID}}.
Route: {{.Origin}} to {{.Destination}}.
Carrier: {{.Carrier}}. Vessel: {{.Vessel}}, voyage {{.Voyage}}.
Status: {{.Status}} ({{.Percentage}}% of the journey complete). ETA: {{.ETA}}.
Recent events: {{.Events}}.
{{- if .Simulated}}
Note: live carrier data was unavailable and this record is simulated. Say so in the summary and keep the assessment conservative.
{{- end}}

Respond with a JSON object:
- summary: a one-sentence analysis.
- prediction: expected delivery confidence, in one sentence.
- riskLevel: LOW, MEDIUM, or HIGH.
- recommendations: exactly 3 professional logistics steps.
`))

// Canned insight text, served whenever generation fails.
const (
	CannedSummaryCredentials = "Live analysis is paused while model credentials are updated; this is a preliminary assessment from the built-in rules."
	CannedSummarySimulated   = "Live carrier data is unavailable, so this assessment is based on simulated data and should be treated as provisional."
	CannedSummaryNominal     = "Based on current route data the shipment is moving through its normal lane with no notable deviation."
	CannedPrediction         = "Based on the sailing schedule, arrival is expected within +/- 48 hours of the published ETA."
)

var cannedRecommendations = [domain.RecommendationCount]string{
	"Confirm that customs clearance documents for the destination port are complete.",
	"Check reefer and dangerous goods declarations, if applicable.",
	"Monitor weather alerts at the destination port.",
}

// credentialMarkers identify model errors caused by a missing or rejected API key.
var credentialMarkers = []string{"API_KEY", "API key", "403", "PERMISSION_DENIED"}

// InsightService asks a generative model for a risk assessment of a container and degrades
// to a canned insight when the model is unavailable or answers badly.
type InsightService struct {
	model   ports.InsightModel
	limiter *rate.Limiter
	timeout time.Duration
	schema  *jsonschema.Schema
	logger  *zap.Logger
}

// NewInsightService creates an InsightService paced and bounded by cfg.
func NewInsightService(model ports.InsightModel, cfg config.GeminiConfig) (*InsightService, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(insightSchemaURL, strings.NewReader(insightSchema)); err != nil {
		return nil, fmt.Errorf("failed to load insight schema: %w", err)
	}
	schema, err := c.Compile(insightSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile insight schema: %w", err)
	}

	limit := rate.Limit(cfg.RatePerSecond)
	if cfg.RatePerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &InsightService{
		model:   model,
		limiter: rate.NewLimiter(limit, burst),
		timeout: timeout,
		schema:  schema,
		logger:  logger.Get(),
	}, nil
}

// Generate returns an insight for details. It never fails: any model, timeout or validation
// problem yields the canned insight.
func (s *InsightService) Generate(ctx context.Context, details trackingdomain.ContainerDetails) (insight domain.AIInsight) {
	log := s.logger.With(zap.String("container_id", details.ContainerID))

	defer func() {
		if r := recover(); r != nil {
			insight = s.fallback(log, details, fmt.Errorf("insight generation panicked: %v", r))
		}
	}()

	insight, err := s.generate(ctx, details)
	if err != nil {
		return s.fallback(log, details, err)
	}

	log.Info("Insight generated", zap.String("risk_level", string(insight.RiskLevel)))
	return insight
}

func (s *InsightService) generate(ctx context.Context, details trackingdomain.ContainerDetails) (domain.AIInsight, error) {
	prompt, err := BuildPrompt(details)
	if err != nil {
		return domain.AIInsight{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		return domain.AIInsight{}, fmt.Errorf("insight rate limiter: %w", err)
	}

	text, err := s.model.GenerateJSON(ctx, prompt)
	if err != nil {
		return domain.AIInsight{}, err
	}

	return s.parse(text)
}

// parse decodes and validates the model's answer.
func (s *InsightService) parse(text string) (domain.AIInsight, error) {
	raw := []byte(stripCodeFence(text))

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.AIInsight{}, fmt.Errorf("%w: %v", ErrInvalidInsight, err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return domain.AIInsight{}, fmt.Errorf("%w: not an object", ErrInvalidInsight)
	}
	if level, ok := obj["riskLevel"].(string); ok {
		obj["riskLevel"] = strings.ToUpper(strings.TrimSpace(level))
	}
	if err := s.schema.Validate(obj); err != nil {
		return domain.AIInsight{}, fmt.Errorf("%w: %v", ErrInvalidInsight, err)
	}

	var insight domain.AIInsight
	if err := json.Unmarshal(raw, &insight); err != nil {
		return domain.AIInsight{}, fmt.Errorf("%w: %v", ErrInvalidInsight, err)
	}
	insight.RiskLevel, _ = domain.ParseRiskLevel(string(insight.RiskLevel))
	insight.Summary = strings.TrimSpace(insight.Summary)
	insight.Prediction = strings.TrimSpace(insight.Prediction)
	insight.Recommendations = insight.Recommendations[:domain.RecommendationCount]

	return insight, nil
}

func (s *InsightService) fallback(log *zap.Logger, details trackingdomain.ContainerDetails, cause error) domain.AIInsight {
	log.Warn("Insight generation failed, serving canned insight", zap.Error(cause))
	return CannedInsight(details, cause)
}

// CannedInsight is the deterministic insight served when generation fails. The summary
// reflects whether the failure looks like a credentials problem and whether details is simulated.
func CannedInsight(details trackingdomain.ContainerDetails, cause error) domain.AIInsight {
	summary := CannedSummaryNominal
	switch {
	case isCredentialError(cause):
		summary = CannedSummaryCredentials
	case !details.IsRealTime:
		summary = CannedSummarySimulated
	}

	recommendations := make([]string, len(cannedRecommendations))
	copy(recommendations, cannedRecommendations[:])

	return domain.AIInsight{
		Summary:         summary,
		Prediction:      CannedPrediction,
		RiskLevel:       domain.RiskLow,
		Recommendations: recommendations,
	}
}

func isCredentialError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range credentialMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

type promptData struct {
	trackingdomain.ContainerDetails
	Events    string
	Simulated bool
}

// BuildPrompt renders the model prompt for details, embedding at most the three most recent events.
func BuildPrompt(details trackingdomain.ContainerDetails) (string, error) {
	events := details.Events
	if len(events) > promptEvents {
		events = events[:promptEvents]
	}
	if events == nil {
		events = []trackingdomain.TrackingEvent{}
	}
	encoded, err := json.Marshal(events)
	if err != nil {
		return "", fmt.Errorf("failed to encode events: %w", err)
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, promptData{
		ContainerDetails: details,
		Events:           string(encoded),
		Simulated:        !details.IsRealTime,
	}); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

// stripCodeFence removes a surrounding markdown code fence, which some models add despite
// the JSON response type.
func stripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		t = t[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(t), "```"))
}
