// Package app wires configuration into the tracking, insight and lookup services.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"container-tracker/internal/core/cache"
	"container-tracker/internal/core/config"
	"container-tracker/internal/core/logger"
	insightadapter "container-tracker/internal/features/insights/adapters"
	insightdomain "container-tracker/internal/features/insights/domain"
	insightports "container-tracker/internal/features/insights/ports"
	insightservice "container-tracker/internal/features/insights/service"
	lookupservice "container-tracker/internal/features/lookup/service"
	trackingadapter "container-tracker/internal/features/tracking/adapters"
	trackingservice "container-tracker/internal/features/tracking/service"

	"go.uber.org/zap"
)

const cachePingTimeout = 2 * time.Second

// Services holds the application services built from configuration.
type Services struct {
	Tracking *trackingservice.TrackingService
	Insights *insightservice.InsightService
	Lookup   *lookupservice.LookupService

	cache cache.Cache
}

// Build creates the services described by cfg. An unreachable cache or a missing model key
// degrades the corresponding feature instead of failing.
func Build(ctx context.Context, cfg *config.AppConfig) (*Services, error) {
	l := logger.Get()
	s := &Services{}

	transport := trackingadapter.NewFindTEUAdapter(cfg.Tracking, cfg.Proxy.Settings())

	var opts []trackingservice.Option
	if c := connectCache(ctx, cfg.Cache); c != nil {
		s.cache = c
		opts = append(opts, trackingservice.WithCache(trackingadapter.NewRedisDetailsCache(c, cfg.Cache.TTL())))
		l.Info("Tracking cache enabled", zap.Duration("ttl", cfg.Cache.TTL()))
	}
	s.Tracking = trackingservice.NewTrackingService(transport, cfg.Tracking.Timeout(), opts...)

	var model insightports.InsightModel
	gemini, err := insightadapter.NewGeminiAdapter(ctx, cfg.Gemini)
	switch {
	case err == nil:
		model = gemini
		l.Info("Gemini insight model configured", zap.String("model", cfg.Gemini.Model))
	case errors.Is(err, insightdomain.ErrModelUnavailable):
		model = insightadapter.UnavailableModel{Reason: "GEMINI_API_KEY is not set"}
		l.Warn("GEMINI_API_KEY is not set, serving canned insights")
	default:
		s.Close()
		return nil, err
	}

	s.Insights, err = insightservice.NewInsightService(model, cfg.Gemini)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create insight service: %w", err)
	}

	s.Lookup = lookupservice.NewLookupService(s.Tracking, s.Insights)

	return s, nil
}

// Close releases the cache connection, if any.
func (s *Services) Close() {
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			logger.Get().Warn("Failed to close cache", zap.Error(err))
		}
	}
}

func connectCache(ctx context.Context, cfg config.CacheConfig) cache.Cache {
	if cfg.RedisURL == "" {
		return nil
	}
	l := logger.Get()

	c, err := cache.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		l.Warn("Invalid REDIS_URL, tracking cache disabled", zap.Error(err))
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, cachePingTimeout)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		l.Warn("Redis unreachable, tracking cache disabled", zap.Error(err))
		c.Close()
		return nil
	}

	return c
}
