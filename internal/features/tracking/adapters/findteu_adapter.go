package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"container-tracker/internal/core/config"
	"container-tracker/internal/core/httpclient"
	"container-tracker/internal/core/logger"
	"container-tracker/internal/core/proxy"
	"container-tracker/internal/features/tracking/domain"

	"go.uber.org/zap"
)

// maxBodyBytes caps how much of a tracking response is read.
const maxBodyBytes = 4 << 20

// ErrEmptyPayload is returned when a success envelope carries no data.
var ErrEmptyPayload = errors.New("tracking API returned an empty payload")

// StatusError is returned when the tracking API answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("tracking API returned status %d", e.Code)
	}
	return fmt.Sprintf("tracking API returned status %d: %s", e.Code, e.Body)
}

// EnvelopeError is returned when the envelope's status flag is not "success".
type EnvelopeError struct {
	Status  string
	Message string
}

func (e *EnvelopeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tracking API reported status %q", e.Status)
	}
	return fmt.Sprintf("tracking API reported status %q: %s", e.Status, e.Message)
}

// findTEUEnvelope is the top-level response wrapper of the tracking API.
type findTEUEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// FindTEUAdapter queries a FindTEU-style container tracking endpoint over HTTP.
// The API key is sent both in the query string and as a bearer token, since deployments
// differ in which one they check.
type FindTEUAdapter struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewFindTEUAdapter creates a FindTEUAdapter. The client timeout is a backstop; the caller's
// context carries the per-lookup deadline.
func NewFindTEUAdapter(cfg config.TrackingConfig, proxySettings proxy.Settings) *FindTEUAdapter {
	return &FindTEUAdapter{
		client:  httpclient.NewClient(cfg.Timeout(), proxySettings),
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		logger:  logger.Get(),
	}
}

// Fetch issues one GET for the container and returns the envelope's data section.
func (a *FindTEUAdapter) Fetch(ctx context.Context, lookup domain.LookupRequest) (json.RawMessage, error) {
	endpoint, err := a.buildURL(lookup)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(strings.TrimSpace(string(body)), 200)}
	}

	var envelope findTEUEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !strings.EqualFold(envelope.Status, "success") {
		return nil, &EnvelopeError{Status: envelope.Status, Message: envelope.Message}
	}

	data := bytes.TrimSpace(envelope.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, ErrEmptyPayload
	}

	a.logger.Debug("Tracking payload received",
		zap.String("container_id", lookup.ContainerID),
		zap.Int("bytes", len(data)),
	)

	return json.RawMessage(data), nil
}

func (a *FindTEUAdapter) buildURL(lookup domain.LookupRequest) (string, error) {
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid tracking API URL: %w", err)
	}

	q := u.Query()
	q.Set("number", lookup.ContainerID)
	if a.apiKey != "" {
		q.Set("api_key", a.apiKey)
	}
	if lookup.Carrier.Code != "" {
		q.Set("scac", lookup.Carrier.Code)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
