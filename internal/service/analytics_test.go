package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optifuel/api/internal/model"
)

func seededRepo() *memoryVoyages {
	actual := func(f float64) *float64 { return &f }
	base := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)
	repo := &memoryVoyages{}
	for i, v := range []model.Voyage{
		{PredictedFuelConsumption: 100, ActualFuelConsumption: actual(103)},
		{PredictedFuelConsumption: 100, ActualFuelConsumption: actual(90)},
		{PredictedFuelConsumption: 50},
	} {
		v.OwnerID = 3
		v.ShipType = model.ShipTypeSurferBoat
		v.WeatherConditions = model.WeatherCalm
		v.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		_ = repo.Create(context.Background(), &v)
	}
	return repo
}

func TestAnalyticsSummaryIsCached(t *testing.T) {
	repo := seededRepo()
	cache := newMemoryCache()
	svc := NewAnalyticsService(repo, cache, time.Minute, discardLogger())
	ctx := context.Background()

	first, err := svc.Summary(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, first.TotalVoyages)
	assert.InDelta(t, 193.0, first.TotalActualVolume, 1e-9)
	assert.InDelta(t, -3.5, first.GlobalAverageDeviation, 1e-9)
	assert.Equal(t, time.Minute, cache.ttls["optifuel:analytics:3:0:summary"])

	second, err := svc.Summary(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.lists)
}

func TestAnalyticsInvalidate(t *testing.T) {
	repo := seededRepo()
	cache := newMemoryCache()
	svc := NewAnalyticsService(repo, cache, time.Minute, discardLogger())
	ctx := context.Background()

	_, err := svc.Charts(ctx, 3)
	require.NoError(t, err)
	_, err = svc.Summary(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lists)

	require.NoError(t, svc.Invalidate(ctx, 3))
	assert.Empty(t, cache.values)

	_, err = svc.Charts(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.lists)
}

func TestAnalyticsChartsWithoutCache(t *testing.T) {
	repo := seededRepo()
	svc := NewAnalyticsService(repo, nil, time.Minute, discardLogger())

	charts, err := svc.Charts(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, charts.HistogramStats, 4)
	assert.Equal(t, 1, charts.HistogramStats[0].Count)
	assert.Equal(t, 1, charts.HistogramStats[1].Count)
	assert.Len(t, charts.TrendStats, 2)
	assert.NoError(t, svc.Invalidate(context.Background(), 3))
}

func TestAnalyticsCacheFailureFallsBackToStore(t *testing.T) {
	repo := seededRepo()
	cache := newMemoryCache()
	cache.getErr = errors.New("redis: i/o timeout")
	svc := NewAnalyticsService(repo, cache, time.Minute, discardLogger())

	summary, err := svc.Summary(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalVoyages)
}

func TestAnalyticsForUnknownOwner(t *testing.T) {
	svc := NewAnalyticsService(seededRepo(), nil, 0, discardLogger())

	summary, err := svc.Summary(context.Background(), 42)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalVoyages)
	assert.Zero(t, summary.GlobalAverageDeviation)
	assert.Empty(t, summary.ShipEfficiency)
}

// racingLister hands out its snapshot only after a concurrent write has landed
type racingLister struct {
	repo   *memoryVoyages
	onLoad func()
	fired  bool
}

func (l *racingLister) ListByOwner(ctx context.Context, ownerID uint) ([]model.Voyage, error) {
	snapshot, err := l.repo.ListByOwner(ctx, ownerID)
	if !l.fired {
		l.fired = true
		l.onLoad()
	}
	return snapshot, err
}

func TestAnalyticsStaleViewIsNotServedAfterInvalidate(t *testing.T) {
	repo := seededRepo()
	cache := newMemoryCache()
	lister := &racingLister{repo: repo}
	svc := NewAnalyticsService(lister, cache, time.Minute, discardLogger())
	ctx := context.Background()

	lister.onLoad = func() {
		actual := 120.0
		late := model.Voyage{OwnerID: 3, ShipType: model.ShipTypeSurferBoat, PredictedFuelConsumption: 100, ActualFuelConsumption: &actual}
		require.NoError(t, repo.Create(ctx, &late))
		require.NoError(t, svc.Invalidate(ctx, 3))
	}

	stale, err := svc.Summary(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, stale.TotalVoyages)

	fresh, err := svc.Summary(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, fresh.TotalVoyages)
	assert.InDelta(t, 313.0, fresh.TotalActualVolume, 1e-9)

	cached, err := svc.Summary(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, fresh, cached)
	assert.Equal(t, 2, repo.lists)
}
