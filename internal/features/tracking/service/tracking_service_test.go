package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"container-tracker/internal/core/config"
	"container-tracker/internal/core/logger"
	"container-tracker/internal/core/proxy"
	adapter "container-tracker/internal/features/tracking/adapters"
	"container-tracker/internal/features/tracking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const livePayload = `{
	"container_number": "MSKU1234567",
	"carrier_name": "Maersk",
	"status": "In Transit",
	"progress_percentage": 60,
	"events": [{"status": "Vessel Departed", "location": "Shanghai", "event_date": "2024-11-02"}]
}`

var fixedNow = time.Date(2024, 11, 3, 9, 30, 0, 0, time.UTC)

// stubTransport is a TrackingTransport driven by a function.
type stubTransport struct {
	calls atomic.Int32
	last  domain.LookupRequest
	fetch func(ctx context.Context, req domain.LookupRequest) (json.RawMessage, error)
}

// Fetch implements TrackingTransport.
func (s *stubTransport) Fetch(ctx context.Context, req domain.LookupRequest) (json.RawMessage, error) {
	s.calls.Add(1)
	s.last = req
	return s.fetch(ctx, req)
}

func returning(payload string, err error) *stubTransport {
	return &stubTransport{fetch: func(context.Context, domain.LookupRequest) (json.RawMessage, error) {
		if err != nil {
			return nil, err
		}
		return json.RawMessage(payload), nil
	}}
}

// MockDetailsCache is a mock implementation of ports.DetailsCache.
type MockDetailsCache struct {
	mock.Mock
}

func (m *MockDetailsCache) Get(ctx context.Context, containerID string) (*domain.ContainerDetails, error) {
	args := m.Called(ctx, containerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContainerDetails), args.Error(1)
}

func (m *MockDetailsCache) Save(ctx context.Context, details domain.ContainerDetails) error {
	args := m.Called(ctx, details)
	return args.Error(0)
}

func newService(transport *stubTransport, opts ...Option) *TrackingService {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewTrackingService(transport, time.Second, opts...)
}

// TestTrackingService_Fetch_Live verifies the live path end to end against a stub transport.
func TestTrackingService_Fetch_Live(t *testing.T) {
	transport := returning(livePayload, nil)
	svc := newService(transport)

	details := svc.Fetch(context.Background(), " msku1234567 ")

	assert.Equal(t, "MSKU1234567", transport.last.ContainerID)
	assert.Equal(t, "MAEU", transport.last.Carrier.Code)

	assert.Equal(t, "MSKU1234567", details.ContainerID)
	assert.Equal(t, "Maersk", details.Carrier)
	assert.Equal(t, domain.StatusInTransit, details.Status)
	assert.Equal(t, 60, details.Percentage)
	assert.True(t, details.IsRealTime)
	assert.Equal(t, "Nov 03 2024 09:30:00 UTC", details.LastSync)
	require.Len(t, details.Events, 1)
	assert.Equal(t, domain.EventTypeSea, details.Events[0].Type)
	assertWellFormed(t, details)
}

// TestTrackingService_Fetch_Failures verifies that every failure kind yields a diagnosable fallback.
func TestTrackingService_Fetch_Failures(t *testing.T) {
	tests := []struct {
		name      string
		transport *stubTransport
		reason    string
	}{
		{
			name:      "http status",
			transport: returning("", &adapter.StatusError{Code: 500}),
			reason:    "status 500",
		},
		{
			name:      "envelope",
			transport: returning("", &adapter.EnvelopeError{Status: "error", Message: "quota exceeded"}),
			reason:    "quota exceeded",
		},
		{
			name:      "connection",
			transport: returning("", errors.New("dial tcp: connection refused")),
			reason:    "connection refused",
		},
		{
			name:      "unrecognized payload",
			transport: returning(`{"data": {"vessel": "Maersk Elba"}}`, nil),
			reason:    ErrNoRecord.Error(),
		},
		{
			name:      "malformed payload",
			transport: returning(`<html>`, nil),
			reason:    ErrNoRecord.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := newService(tt.transport).Fetch(context.Background(), "MSKU1234567")

			assert.False(t, details.IsRealTime)
			assert.Equal(t, "MSKU1234567", details.ContainerID)
			assert.Equal(t, "Maersk Line", details.Carrier)
			require.NotEmpty(t, details.Events)
			assert.Contains(t, details.Events[0].Description, tt.reason)
			assert.True(t, details.Status.Valid())
			assertWellFormed(t, details)
		})
	}
}

// TestTrackingService_Fetch_Timeout verifies that a hanging transport is cut off by the timeout.
func TestTrackingService_Fetch_Timeout(t *testing.T) {
	transport := &stubTransport{fetch: func(ctx context.Context, _ domain.LookupRequest) (json.RawMessage, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	svc := NewTrackingService(transport, 50*time.Millisecond)

	start := time.Now()
	details := svc.Fetch(context.Background(), "MSKU1234567")

	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, details.IsRealTime)
	require.Len(t, details.Events, 1)
	assert.Contains(t, details.Events[0].Description, context.DeadlineExceeded.Error())
}

// TestTrackingService_Fetch_EmptyID verifies that a blank ID falls back without calling the transport.
func TestTrackingService_Fetch_EmptyID(t *testing.T) {
	transport := returning(livePayload, nil)
	svc := newService(transport)

	details := svc.Fetch(context.Background(), "   ")

	assert.Zero(t, transport.calls.Load())
	assert.False(t, details.IsRealTime)
	assert.Equal(t, domain.PlaceholderContainerID, details.ContainerID)
	assert.Contains(t, details.Events[0].Description, ErrEmptyContainerID.Error())
}

// TestTrackingService_Fetch_Panic verifies that a panicking transport is converted to a fallback.
func TestTrackingService_Fetch_Panic(t *testing.T) {
	transport := &stubTransport{fetch: func(context.Context, domain.LookupRequest) (json.RawMessage, error) {
		panic("boom")
	}}

	details := newService(transport).Fetch(context.Background(), "MSKU1234567")

	assert.False(t, details.IsRealTime)
	assert.Contains(t, details.Events[0].Description, "boom")
}

// TestTrackingService_Fetch_Totality verifies well-formed results for arbitrary inputs.
func TestTrackingService_Fetch_Totality(t *testing.T) {
	inputs := []string{"", "A", "MSK", "MSKU1234567", "\t\n", "🚢🚢🚢", "msku-123/../?&x=1", string(make([]byte, 64))}
	transports := []*stubTransport{
		returning(livePayload, nil),
		returning("", errors.New("network down")),
		returning(`[]`, nil),
		returning(`{"number": "X", "percentage": 900}`, nil),
	}

	for _, transport := range transports {
		svc := newService(transport)
		for _, in := range inputs {
			details := svc.Fetch(context.Background(), in)
			assertWellFormed(t, details)
		}
	}
}

// TestTrackingService_Fetch_Idempotent verifies that repeated lookups differ only in LastSync.
func TestTrackingService_Fetch_Idempotent(t *testing.T) {
	var tick atomic.Int64
	clock := func() time.Time { return fixedNow.Add(time.Duration(tick.Add(1)) * time.Second) }
	svc := NewTrackingService(returning(livePayload, nil), time.Second, WithClock(clock))

	first := svc.Fetch(context.Background(), "MSKU1234567")
	second := svc.Fetch(context.Background(), "MSKU1234567")

	assert.NotEqual(t, first.LastSync, second.LastSync)
	first.LastSync, second.LastSync = "", ""
	assert.Equal(t, first, second)
}

// TestTrackingService_Fetch_LogsFailure verifies that the failure reason is logged at WARN.
func TestTrackingService_Fetch_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger.Set(zap.New(core))
	defer logger.Set(nil)

	svc := newService(returning("", errors.New("connection reset")))
	svc.Fetch(context.Background(), "MSKU1234567")

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	fields := warnings[0].ContextMap()
	assert.Equal(t, "FAILED", fields["state"])
	assert.Equal(t, "MSKU1234567", fields["container_id"])
	assert.Contains(t, fields["error"], "connection reset")
}

// TestTrackingService_Fetch_CacheHit verifies that a cached record short-circuits the transport.
func TestTrackingService_Fetch_CacheHit(t *testing.T) {
	cached := &domain.ContainerDetails{
		ContainerID: "MSKU1234567",
		Carrier:     "Maersk",
		Vessel:      "Maersk Elba",
		Voyage:      "231W",
		Origin:      "Shanghai",
		Destination: "Rotterdam",
		Status:      domain.StatusInTransit,
		Percentage:  60,
		ETA:         "2024-12-01",
		IsRealTime:  true,
		LastSync:    "Nov 02 2024 10:00:00 UTC",
		Events:      []domain.TrackingEvent{},
	}
	cache := new(MockDetailsCache)
	cache.On("Get", mock.Anything, "MSKU1234567").Return(cached, nil)
	transport := returning(livePayload, nil)

	details := newService(transport, WithCache(cache)).Fetch(context.Background(), "MSKU1234567")

	assert.Equal(t, *cached, details)
	assert.Zero(t, transport.calls.Load())
	cache.AssertExpectations(t)
	cache.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestTrackingService_Fetch_CacheMissStoresLive verifies that live results are written back.
func TestTrackingService_Fetch_CacheMissStoresLive(t *testing.T) {
	cache := new(MockDetailsCache)
	cache.On("Get", mock.Anything, "MSKU1234567").Return(nil, nil)
	cache.On("Save", mock.Anything, mock.MatchedBy(func(d domain.ContainerDetails) bool {
		return d.IsRealTime && d.ContainerID == "MSKU1234567"
	})).Return(nil)

	details := newService(returning(livePayload, nil), WithCache(cache)).Fetch(context.Background(), "MSKU1234567")

	assert.True(t, details.IsRealTime)
	cache.AssertExpectations(t)
}

// TestTrackingService_Fetch_FallbackNotCached verifies that synthesized records are never cached.
func TestTrackingService_Fetch_FallbackNotCached(t *testing.T) {
	cache := new(MockDetailsCache)
	cache.On("Get", mock.Anything, "MSKU1234567").Return(nil, nil)

	details := newService(returning("", errors.New("down")), WithCache(cache)).Fetch(context.Background(), "MSKU1234567")

	assert.False(t, details.IsRealTime)
	cache.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestTrackingService_Fetch_CacheErrorsIgnored verifies that cache failures do not affect the result.
func TestTrackingService_Fetch_CacheErrorsIgnored(t *testing.T) {
	cache := new(MockDetailsCache)
	cache.On("Get", mock.Anything, "MSKU1234567").Return(nil, errors.New("redis down"))
	cache.On("Save", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	details := newService(returning(livePayload, nil), WithCache(cache)).Fetch(context.Background(), "MSKU1234567")

	assert.True(t, details.IsRealTime)
	assert.Equal(t, 60, details.Percentage)
	cache.AssertExpectations(t)
}

// TestTrackingService_Fetch_HTTPTransport runs the lookup against the real HTTP transport.
func TestTrackingService_Fetch_HTTPTransport(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"success","data":` + livePayload + `}`))
		}))
		defer server.Close()

		details := newHTTPService(server.URL).Fetch(context.Background(), "MSKU1234567")

		assert.True(t, details.IsRealTime)
		assert.Equal(t, "Maersk", details.Carrier)
		assert.Equal(t, 60, details.Percentage)
		require.Len(t, details.Events, 1)
		assert.Equal(t, domain.EventTypeSea, details.Events[0].Type)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		details := newHTTPService(server.URL).Fetch(context.Background(), "MSKU1234567")

		assert.False(t, details.IsRealTime)
		require.NotEmpty(t, details.Events)
		assert.Contains(t, details.Events[0].Description, "500")
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":`))
		}))
		defer server.Close()

		details := newHTTPService(server.URL).Fetch(context.Background(), "MSKU1234567")

		assert.False(t, details.IsRealTime)
		assert.Contains(t, details.Events[0].Description, "decode")
	})
}

func newHTTPService(url string) *TrackingService {
	transport := adapter.NewFindTEUAdapter(config.TrackingConfig{URL: url, APIKey: "k", TimeoutSeconds: 2}, proxy.Settings{})
	return NewTrackingService(transport, time.Second, WithClock(func() time.Time { return fixedNow }))
}
