package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"optifuel/api/internal/model"
)

func ptr(f float64) *float64 { return &f }

func TestDeviation(t *testing.T) {
	tests := []struct {
		predicted, actual, want float64
	}{
		{100, 103, 3},
		{100, 90, -10},
		{100, 107, 7},
		{100, 97, -3},
		{50, 50, 0},
		{80, 100, 25},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Deviation(tt.predicted, tt.actual), 1e-9, "predicted=%v actual=%v", tt.predicted, tt.actual)
	}
}

func TestCategorizeBoundaries(t *testing.T) {
	tests := []struct {
		deviation float64
		want      model.DeviationCategory
	}{
		{-50, model.DeviationSaving},
		{-3, model.DeviationSaving},
		{-2.9999, model.DeviationNormal},
		{0, model.DeviationNormal},
		{3, model.DeviationNormal},
		{3.0001, model.DeviationWarning},
		{7, model.DeviationWarning},
		{7.0001, model.DeviationCritical},
		{400, model.DeviationCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.deviation), "deviation=%v", tt.deviation)
	}
}

func TestCategorizeWholePercentInputsHitEdgesExactly(t *testing.T) {
	// (actual-predicted)/predicted*100 rounds 107/100 above 7; the classifier must not.
	assert.Equal(t, model.DeviationSaving, Categorize(Deviation(100, 97)))
	assert.Equal(t, model.DeviationNormal, Categorize(Deviation(100, 103)))
	assert.Equal(t, model.DeviationWarning, Categorize(Deviation(100, 107)))
	assert.Equal(t, model.DeviationCritical, Categorize(Deviation(100, 107.01)))
}

func TestBucketsArePartition(t *testing.T) {
	for d := -20.0; d <= 20.0; d += 0.25 {
		matches := 0
		for _, c := range model.DeviationCategories {
			if Categorize(d) == c {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "deviation=%v", d)
	}
}

func TestClassify(t *testing.T) {
	t.Run("without actual", func(t *testing.T) {
		v := &model.Voyage{PredictedFuelConsumption: 50}
		_, ok := Classify(v)
		assert.False(t, ok)
		_, ok = VoyageDeviation(v)
		assert.False(t, ok)
	})

	t.Run("with actual", func(t *testing.T) {
		v := &model.Voyage{PredictedFuelConsumption: 100, ActualFuelConsumption: ptr(110)}
		category, ok := Classify(v)
		assert.True(t, ok)
		assert.Equal(t, model.DeviationCritical, category)
	})
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("Warning")
	assert.True(t, ok)
	assert.Equal(t, model.DeviationWarning, c)

	_, ok = ParseCategory("warning")
	assert.False(t, ok)
	_, ok = ParseCategory("Extreme")
	assert.False(t, ok)
}
