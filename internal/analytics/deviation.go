// Package analytics turns a user's voyage records into paged listings,
// summary statistics and chart aggregates. Everything here is a pure
// function over an in-memory slice; loading the records is the caller's job.
package analytics

import (
	"optifuel/api/internal/model"
)

// Bucket edges in percent. Each edge belongs to the lower bucket.
const (
	savingEdge  = -3.0
	normalEdge  = 3.0
	warningEdge = 7.0
)

// Deviation returns the signed percentage by which actual exceeds predicted.
// predicted must be positive. The product is taken before the division so that
// whole-percent inputs land exactly on the bucket edges.
func Deviation(predicted, actual float64) float64 {
	return (actual - predicted) * 100 / predicted
}

// Categorize maps a deviation to its bucket:
// Saving (d <= -3), Normal (-3 < d <= 3), Warning (3 < d <= 7), Critical (d > 7).
func Categorize(deviation float64) model.DeviationCategory {
	switch {
	case deviation <= savingEdge:
		return model.DeviationSaving
	case deviation <= normalEdge:
		return model.DeviationNormal
	case deviation <= warningEdge:
		return model.DeviationWarning
	default:
		return model.DeviationCritical
	}
}

// VoyageDeviation returns the deviation of v and false when no actual consumption is reported
func VoyageDeviation(v *model.Voyage) (float64, bool) {
	if v.ActualFuelConsumption == nil {
		return 0, false
	}
	return Deviation(v.PredictedFuelConsumption, *v.ActualFuelConsumption), true
}

// Classify returns the bucket of v and false when no actual consumption is reported
func Classify(v *model.Voyage) (model.DeviationCategory, bool) {
	d, ok := VoyageDeviation(v)
	if !ok {
		return "", false
	}
	return Categorize(d), true
}

// ParseCategory resolves a caller-supplied category label
func ParseCategory(s string) (model.DeviationCategory, bool) {
	for _, c := range model.DeviationCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
