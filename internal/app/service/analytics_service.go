package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/domain/entity"

	"github.com/patrickmn/go-cache"
)

const analyticsCacheKey = "global_analytics"

// analyticsServiceImpl implements port.AnalyticsService. The last successful
// read is kept without expiry and refreshed in the background once older
// than ttl. Failed reads are logged and otherwise ignored.
type analyticsServiceImpl struct {
	reader  port.ContractReader
	cache   *cache.Cache
	ttl     time.Duration
	loading atomic.Bool
	logger  port.Logger
	now     func() time.Time
}

// NewAnalyticsService creates an analytics service over reader.
func NewAnalyticsService(reader port.ContractReader, ttl, cleanupInterval time.Duration, logger port.Logger) port.AnalyticsService {
	return &analyticsServiceImpl{
		reader: reader,
		cache:  cache.New(cache.NoExpiration, cleanupInterval),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Snapshot returns the cached analytics. With nothing cached, or a stale
// value, it starts one background read unless a read is already in flight.
func (s *analyticsServiceImpl) Snapshot(ctx context.Context) entity.AnalyticsSnapshot {
	v, ok := s.cache.Get(analyticsCacheKey)
	if ok {
		snap := v.(entity.AnalyticsSnapshot)
		if s.ttl <= 0 || s.now().Sub(snap.FetchedAt) < s.ttl {
			return snap
		}
		s.refreshAsync(ctx)
		return snap
	}
	s.refreshAsync(ctx)
	return entity.AnalyticsSnapshot{Loading: true}
}

func (s *analyticsServiceImpl) refreshAsync(ctx context.Context) {
	if !s.loading.CompareAndSwap(false, true) {
		return
	}
	bg := context.WithoutCancel(ctx)
	go func() {
		defer s.loading.Store(false)
		_ = s.load(bg)
	}()
}

// Load performs one read and caches the result.
func (s *analyticsServiceImpl) Load(ctx context.Context) error {
	return s.load(ctx)
}

func (s *analyticsServiceImpl) load(ctx context.Context) error {
	analytics, err := s.reader.GetGlobalAnalytics(ctx)
	if err != nil {
		s.logger.Warn("Global analytics read failed", "error", err)
		return fmt.Errorf("failed to read global analytics: %w", err)
	}
	snap := entity.AnalyticsSnapshot{Analytics: analytics, FetchedAt: s.now()}
	s.cache.Set(analyticsCacheKey, snap, cache.NoExpiration)
	s.logger.Debug("Global analytics refreshed", "active_pools", analytics.ActivePools)
	return nil
}
