package analytics

import (
	"cmp"
	"slices"

	"optifuel/api/internal/model"
)

// TrendWindow is the number of recent completed voyages shown on the trend chart
const TrendWindow = 10

// trendDateLayout renders as MM/dd
const trendDateLayout = "01/02"

// histogramLabels are the display labels of the deviation buckets
var histogramLabels = map[model.DeviationCategory]string{
	model.DeviationSaving:   "Saving (>3%)",
	model.DeviationNormal:   "Normal (+/-3%)",
	model.DeviationWarning:  "Warning (3-7%)",
	model.DeviationCritical: "Critical (>7%)",
}

// ownedBy returns the records belonging to ownerID
func ownedBy(records []model.Voyage, ownerID uint) []model.Voyage {
	out := make([]model.Voyage, 0, len(records))
	for i := range records {
		if records[i].OwnerID == ownerID {
			out = append(out, records[i])
		}
	}
	return out
}

// Completed returns the records with a reported actual consumption
func Completed(records []model.Voyage) []model.Voyage {
	out := make([]model.Voyage, 0, len(records))
	for i := range records {
		if records[i].HasActual() {
			out = append(out, records[i])
		}
	}
	return out
}

// meanGroup accumulates a running sum per group key
type meanGroup struct {
	key   string
	sum   float64
	count int
}

func (g meanGroup) mean() float64 {
	return g.sum / float64(g.count)
}

// groupMeans folds records into per-key means. Records for which value
// reports false are skipped; keys with no accepted record are not emitted.
// Groups come back ordered by key.
func groupMeans(records []model.Voyage, key func(*model.Voyage) string, value func(*model.Voyage) (float64, bool)) []meanGroup {
	index := make(map[string]int)
	groups := make([]meanGroup, 0)

	for i := range records {
		v, ok := value(&records[i])
		if !ok {
			continue
		}
		k := key(&records[i])
		pos, exists := index[k]
		if !exists {
			pos = len(groups)
			index[k] = pos
			groups = append(groups, meanGroup{key: k})
		}
		groups[pos].sum += v
		groups[pos].count++
	}

	slices.SortFunc(groups, func(a, b meanGroup) int { return cmp.Compare(a.key, b.key) })
	return groups
}

func shipTypeOf(v *model.Voyage) string { return v.ShipType }

func weatherOf(v *model.Voyage) string { return v.WeatherConditions }

func actualOf(v *model.Voyage) (float64, bool) {
	if v.ActualFuelConsumption == nil {
		return 0, false
	}
	return *v.ActualFuelConsumption, true
}

// ShipDeviations returns the mean deviation per ship type, ordered by ship type
func ShipDeviations(records []model.Voyage) []model.ShipDeviation {
	groups := groupMeans(records, shipTypeOf, VoyageDeviation)
	out := make([]model.ShipDeviation, 0, len(groups))
	for _, g := range groups {
		out = append(out, model.ShipDeviation{ShipType: g.key, AvgDeviation: g.mean()})
	}
	return out
}

// ShipEfficiency returns ShipDeviations with the worst over-consumption first.
// Equal means keep ship type order.
func ShipEfficiency(records []model.Voyage) []model.ShipDeviation {
	out := ShipDeviations(records)
	slices.SortStableFunc(out, func(a, b model.ShipDeviation) int {
		return cmp.Compare(b.AvgDeviation, a.AvgDeviation)
	})
	return out
}

// AverageDeviation returns the mean deviation over records with an actual
// consumption, and 0 when there are none.
func AverageDeviation(records []model.Voyage) float64 {
	var sum float64
	var n int
	for i := range records {
		if d, ok := VoyageDeviation(&records[i]); ok {
			sum += d
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Summarize computes the account-wide summary for ownerID
func Summarize(records []model.Voyage, ownerID uint) model.AnalyticsSummary {
	owned := ownedBy(records, ownerID)

	summary := model.AnalyticsSummary{
		TotalVoyages:           len(owned),
		GlobalAverageDeviation: AverageDeviation(owned),
		ShipEfficiency:         ShipEfficiency(owned),
	}
	for i := range owned {
		summary.TotalPredictedVolume += owned[i].PredictedFuelConsumption
		if owned[i].ActualFuelConsumption != nil {
			summary.TotalActualVolume += *owned[i].ActualFuelConsumption
		}
	}
	return summary
}

// Trend returns up to limit of the most recent completed voyages, oldest first
func Trend(records []model.Voyage, limit int) []model.TrendPoint {
	completed := Completed(records)
	slices.SortStableFunc(completed, func(a, b model.Voyage) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if len(completed) > limit {
		completed = completed[:limit]
	}
	slices.Reverse(completed)

	points := make([]model.TrendPoint, 0, len(completed))
	for i := range completed {
		points = append(points, model.TrendPoint{
			Date:      completed[i].CreatedAt.UTC().Format(trendDateLayout),
			Predicted: completed[i].PredictedFuelConsumption,
			Actual:    *completed[i].ActualFuelConsumption,
		})
	}
	return points
}

// Histogram counts completed voyages per deviation bucket. The four buckets are always present.
func Histogram(records []model.Voyage) []model.HistogramBucket {
	counts := make(map[model.DeviationCategory]int, len(model.DeviationCategories))
	for i := range records {
		if category, ok := Classify(&records[i]); ok {
			counts[category]++
		}
	}

	buckets := make([]model.HistogramBucket, 0, len(model.DeviationCategories))
	for _, category := range model.DeviationCategories {
		buckets = append(buckets, model.HistogramBucket{
			Category: category,
			Range:    histogramLabels[category],
			Count:    counts[category],
		})
	}
	return buckets
}

// WeatherStats returns the mean actual consumption per weather condition, lowest first
func WeatherStats(records []model.Voyage) []model.WeatherConsumption {
	groups := groupMeans(records, weatherOf, actualOf)
	out := make([]model.WeatherConsumption, 0, len(groups))
	for _, g := range groups {
		out = append(out, model.WeatherConsumption{Weather: g.key, AvgConsumption: g.mean()})
	}
	slices.SortStableFunc(out, func(a, b model.WeatherConsumption) int {
		return cmp.Compare(a.AvgConsumption, b.AvgConsumption)
	})
	return out
}

// BuildCharts computes every chart view for ownerID
func BuildCharts(records []model.Voyage, ownerID uint) model.AnalyticsCharts {
	owned := ownedBy(records, ownerID)
	return model.AnalyticsCharts{
		ShipStats:      ShipDeviations(owned),
		TrendStats:     Trend(owned, TrendWindow),
		HistogramStats: Histogram(owned),
		WeatherStats:   WeatherStats(owned),
	}
}
