package service

import (
	"context"
	"sync/atomic"
	"time"

	"container-tracker/internal/core/logger"
	"container-tracker/internal/features/lookup/domain"
	"container-tracker/internal/features/lookup/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LookupService runs the tracking stage and then the insight stage for a container.
type LookupService struct {
	tracker ports.Tracker
	advisor ports.Advisor
	logger  *zap.Logger
}

// NewLookupService creates a new LookupService.
func NewLookupService(tracker ports.Tracker, advisor ports.Advisor) *LookupService {
	return &LookupService{
		tracker: tracker,
		advisor: advisor,
		logger:  logger.Get(),
	}
}

// Run looks up containerID. The insight is generated only after the tracking record is final.
func (s *LookupService) Run(ctx context.Context, containerID string) domain.LookupResult {
	result, _ := s.run(ctx, containerID, func() bool { return true })
	return result
}

// run executes both stages. current is consulted between and after them; once it reports
// false the remaining stage is skipped and ok is false.
func (s *LookupService) run(ctx context.Context, containerID string, current func() bool) (result domain.LookupResult, ok bool) {
	log := s.logger.With(
		zap.String("lookup_id", uuid.NewString()),
		zap.String("container_id", containerID),
	)
	start := time.Now()

	result.Details = s.tracker.Fetch(ctx, containerID)
	if !current() {
		log.Debug("Lookup superseded after tracking stage")
		return result, false
	}

	result.Insight = s.advisor.Generate(ctx, result.Details)
	if !current() {
		log.Debug("Lookup superseded after insight stage")
		return result, false
	}

	log.Info("Lookup completed",
		zap.Bool("is_real_time", result.Details.IsRealTime),
		zap.String("status", string(result.Details.Status)),
		zap.String("risk_level", string(result.Insight.RiskLevel)),
		zap.Duration("duration", time.Since(start)),
	)
	return result, true
}

// Session serializes the results of successive lookups from one client. Each Lookup takes a
// new generation; a lookup overtaken by a newer one reports its result as stale.
type Session struct {
	service    *LookupService
	generation atomic.Uint64
}

// NewSession creates a Session backed by service.
func NewSession(service *LookupService) *Session {
	return &Session{service: service}
}

// Lookup runs a lookup for containerID. ok is false when a newer lookup started before this
// one finished, in which case the result must be discarded.
func (s *Session) Lookup(ctx context.Context, containerID string) (domain.LookupResult, bool) {
	return s.Begin()(ctx, containerID)
}

// Begin takes a new generation now and returns the lookup bound to it. Callers that run
// lookups concurrently use it to fix the supersede order before starting the goroutine.
func (s *Session) Begin() func(ctx context.Context, containerID string) (domain.LookupResult, bool) {
	gen := s.generation.Add(1)
	return func(ctx context.Context, containerID string) (domain.LookupResult, bool) {
		return s.service.run(ctx, containerID, func() bool {
			return s.generation.Load() == gen
		})
	}
}

// Reset supersedes any lookup in flight.
func (s *Session) Reset() {
	s.generation.Add(1)
}
