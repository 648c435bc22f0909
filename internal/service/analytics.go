package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"optifuel/api/internal/analytics"
	"optifuel/api/internal/model"
)

// VoyageLister loads every voyage of one owner
type VoyageLister interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Voyage, error)
}

// AnalyticsService computes the dashboard views, cached per owner
type AnalyticsService struct {
	voyages VoyageLister
	cache   Cache
	ttl     time.Duration
	logger  *slog.Logger
}

// NewAnalyticsService creates an analytics service. A nil cache disables caching.
func NewAnalyticsService(voyages VoyageLister, cache Cache, ttl time.Duration, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		voyages: voyages,
		cache:   cache,
		ttl:     ttl,
		logger:  logger.With("component", "analytics"),
	}
}

// Cached views live under the owner's current generation. Invalidate bumps the
// generation, so a view computed from data read before a write is stored under
// a key nobody reads any more.
func generationKey(ownerID uint) string {
	return fmt.Sprintf("optifuel:analytics:%d:gen", ownerID)
}

func summaryKey(ownerID uint, gen int64) string {
	return fmt.Sprintf("optifuel:analytics:%d:%d:summary", ownerID, gen)
}

func chartsKey(ownerID uint, gen int64) string {
	return fmt.Sprintf("optifuel:analytics:%d:%d:charts", ownerID, gen)
}

// Summary returns the account-wide totals of ownerID
func (s *AnalyticsService) Summary(ctx context.Context, ownerID uint) (*model.AnalyticsSummary, error) {
	gen, cacheable := s.generation(ctx, ownerID)

	var summary model.AnalyticsSummary
	if cacheable && s.cached(ctx, summaryKey(ownerID, gen), &summary) {
		return &summary, nil
	}

	records, err := s.voyages.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load voyages: %w", err)
	}
	summary = analytics.Summarize(records, ownerID)
	if cacheable {
		s.store(ctx, summaryKey(ownerID, gen), summary)
	}
	return &summary, nil
}

// Charts returns the chart views of ownerID
func (s *AnalyticsService) Charts(ctx context.Context, ownerID uint) (*model.AnalyticsCharts, error) {
	gen, cacheable := s.generation(ctx, ownerID)

	var charts model.AnalyticsCharts
	if cacheable && s.cached(ctx, chartsKey(ownerID, gen), &charts) {
		return &charts, nil
	}

	records, err := s.voyages.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load voyages: %w", err)
	}
	charts = analytics.BuildCharts(records, ownerID)
	if cacheable {
		s.store(ctx, chartsKey(ownerID, gen), charts)
	}
	return &charts, nil
}

// Invalidate moves ownerID to a new generation and drops the views of the old one
func (s *AnalyticsService) Invalidate(ctx context.Context, ownerID uint) error {
	if s.cache == nil {
		return nil
	}
	gen, err := s.cache.Incr(ctx, generationKey(ownerID))
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, summaryKey(ownerID, gen-1), chartsKey(ownerID, gen-1))
}

// generation returns the current generation of ownerID and whether the cache
// can be used for this request. An unreadable generation bypasses the cache.
func (s *AnalyticsService) generation(ctx context.Context, ownerID uint) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	var gen int64
	if _, err := s.cache.Get(ctx, generationKey(ownerID), &gen); err != nil {
		s.logger.Warn("cache generation read failed", "owner_id", ownerID, "error", err)
		return 0, false
	}
	return gen, true
}

// cached reads key into dest. A cache failure counts as a miss.
func (s *AnalyticsService) cached(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	return hit
}

func (s *AnalyticsService) store(ctx context.Context, key string, value interface{}) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
}
