package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"container-tracker/internal/core/logger"
	adapter "container-tracker/internal/features/tracking/adapters"
	"container-tracker/internal/features/tracking/domain"
	"container-tracker/internal/features/tracking/ports"

	"go.uber.org/zap"
)

var (
	// ErrEmptyContainerID is the fallback reason for blank container IDs.
	ErrEmptyContainerID = errors.New("container ID is empty")
	// ErrNoRecord is the fallback reason when the payload holds no recognizable record.
	ErrNoRecord = errors.New("no recognizable tracking record in payload")
)

// DefaultTimeout bounds the tracking call when none is configured.
const DefaultTimeout = 10 * time.Second

// LastSyncLayout formats the local time of a successful live lookup.
const LastSyncLayout = "Jan 02 2006 15:04:05 MST"

// Lookup states, reported in logs.
const (
	stateRequesting  = "REQUESTING"
	stateNormalizing = "NORMALIZING"
	stateFailed      = "FAILED"
	stateDone        = "DONE"
)

// TrackingService fetches a container's shipment state and degrades to a synthesized record
// on any failure.
type TrackingService struct {
	transport ports.TrackingTransport
	cache     ports.DetailsCache
	timeout   time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// Option configures a TrackingService.
type Option func(*TrackingService)

// WithCache enables read-through caching of live results.
func WithCache(c ports.DetailsCache) Option {
	return func(s *TrackingService) {
		s.cache = c
	}
}

// WithClock overrides the clock used for LastSync.
func WithClock(now func() time.Time) Option {
	return func(s *TrackingService) {
		s.now = now
	}
}

// NewTrackingService creates a TrackingService. A non-positive timeout selects DefaultTimeout.
func NewTrackingService(transport ports.TrackingTransport, timeout time.Duration, opts ...Option) *TrackingService {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	s := &TrackingService{
		transport: transport,
		timeout:   timeout,
		now:       time.Now,
		logger:    logger.Get(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the tracking record for containerID. It never fails and never panics: every
// transport, protocol or payload problem yields a synthesized record whose single event names
// the cause.
func (s *TrackingService) Fetch(ctx context.Context, containerID string) (details domain.ContainerDetails) {
	id := domain.NormalizeContainerID(containerID)
	carrier := domain.LookupCarrier(id)
	log := s.logger.With(zap.String("container_id", id))

	defer func() {
		if r := recover(); r != nil {
			details = s.fail(log, id, carrier, fmt.Errorf("tracking lookup panicked: %v", r))
		}
	}()

	if id == "" {
		return s.fail(log, id, carrier, ErrEmptyContainerID)
	}

	if cached := s.cached(ctx, log, id); cached != nil {
		return *cached
	}

	log.Debug("Tracking lookup", zap.String("state", stateRequesting), zap.String("carrier", carrier.Name))

	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payload, err := s.transport.Fetch(reqCtx, domain.LookupRequest{ContainerID: id, Carrier: carrier})
	if err != nil {
		return s.fail(log, id, carrier, fmt.Errorf("tracking request failed: %w", err))
	}

	log.Debug("Tracking lookup", zap.String("state", stateNormalizing))

	details, ok := adapter.Normalize(payload, id, carrier)
	if !ok {
		return s.fail(log, id, carrier, ErrNoRecord)
	}

	details.IsRealTime = true
	details.LastSync = s.now().Format(LastSyncLayout)

	s.store(ctx, log, details)

	log.Info("Tracking lookup completed",
		zap.String("state", stateDone),
		zap.String("status", string(details.Status)),
		zap.Int("events", len(details.Events)),
	)

	return details
}

func (s *TrackingService) fail(log *zap.Logger, id string, carrier domain.CarrierInfo, reason error) domain.ContainerDetails {
	log.Warn("Tracking lookup failed, serving simulated data",
		zap.String("state", stateFailed),
		zap.Error(reason),
	)
	return Synthesize(id, carrier.Name, reason.Error())
}

func (s *TrackingService) cached(ctx context.Context, log *zap.Logger, id string) *domain.ContainerDetails {
	if s.cache == nil {
		return nil
	}
	hit, err := s.cache.Get(ctx, id)
	if err != nil {
		log.Warn("Tracking cache read failed", zap.Error(err))
		return nil
	}
	if hit != nil {
		log.Debug("Tracking cache hit", zap.String("last_sync", hit.LastSync))
	}
	return hit
}

func (s *TrackingService) store(ctx context.Context, log *zap.Logger, details domain.ContainerDetails) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Save(ctx, details); err != nil {
		log.Warn("Tracking cache write failed", zap.Error(err))
	}
}
