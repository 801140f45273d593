package adapter

import (
	"context"
	"fmt"
	"strings"

	"container-tracker/internal/core/config"
	"container-tracker/internal/core/httpclient"
	"container-tracker/internal/core/proxy"
	"container-tracker/internal/features/insights/domain"

	"google.golang.org/genai"
)

// insightSchema constrains the model's output to the AIInsight shape.
var insightSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary":    {Type: genai.TypeString, Description: "One sentence describing the current state of the shipment."},
		"prediction": {Type: genai.TypeString, Description: "One sentence predicting arrival or delay."},
		"riskLevel": {
			Type: genai.TypeString,
			Enum: []string{string(domain.RiskLow), string(domain.RiskMedium), string(domain.RiskHigh)},
		},
		"recommendations": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Exactly three short, actionable recommendations.",
		},
	},
	Required: []string{"summary", "prediction", "riskLevel", "recommendations"},
}

// GeminiAdapter implements ports.InsightModel with the Gemini API.
type GeminiAdapter struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiAdapter creates a GeminiAdapter. Requests go through the shared logging HTTP client.
func NewGeminiAdapter(ctx context.Context, cfg config.GeminiConfig) (*GeminiAdapter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", domain.ErrModelUnavailable)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpclient.NewClient(cfg.Timeout(), proxy.Settings{}),
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiAdapter{
		client: client,
		model:  cfg.Model,
		config: &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   insightSchema,
		},
	}, nil
}

// GenerateJSON sends prompt and returns the model's JSON text.
func (a *GeminiAdapter) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), a.config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", domain.ErrEmptyResponse
	}

	return text, nil
}

// UnavailableModel is the InsightModel used when no generative backend is configured.
// Every call fails, which routes callers to their canned answer.
type UnavailableModel struct {
	Reason string
}

// GenerateJSON implements ports.InsightModel.
func (m UnavailableModel) GenerateJSON(context.Context, string) (string, error) {
	if m.Reason == "" {
		return "", domain.ErrModelUnavailable
	}
	return "", fmt.Errorf("%w: %s", domain.ErrModelUnavailable, m.Reason)
}
