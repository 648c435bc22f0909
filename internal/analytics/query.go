package analytics

import (
	"cmp"
	"slices"
	"strings"

	"optifuel/api/internal/apperr"
	"optifuel/api/internal/model"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// comparator orders two voyages on a single field, ascending
type comparator func(a, b *model.Voyage) int

// sortFields is the allow-list of sortable fields. Keys are normalized with sortKey.
var sortFields = map[string]comparator{
	"createdat": func(a, b *model.Voyage) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"distance":  func(a, b *model.Voyage) int { return cmp.Compare(a.Distance, b.Distance) },
	"engineefficiency": func(a, b *model.Voyage) int {
		return cmp.Compare(a.EngineEfficiency, b.EngineEfficiency)
	},
	"shiptype": func(a, b *model.Voyage) int { return cmp.Compare(a.ShipType, b.ShipType) },
	"routeid":  func(a, b *model.Voyage) int { return cmp.Compare(a.RouteID, b.RouteID) },
	"fueltype": func(a, b *model.Voyage) int { return cmp.Compare(a.FuelType, b.FuelType) },
	"weatherconditions": func(a, b *model.Voyage) int {
		return cmp.Compare(a.WeatherConditions, b.WeatherConditions)
	},
	"month": func(a, b *model.Voyage) int { return cmp.Compare(a.Month, b.Month) },
	"predictedfuelconsumption": func(a, b *model.Voyage) int {
		return cmp.Compare(a.PredictedFuelConsumption, b.PredictedFuelConsumption)
	},
	"actualfuelconsumption": func(a, b *model.Voyage) int {
		return compareOptional(a.ActualFuelConsumption, b.ActualFuelConsumption)
	},
	"deviation": func(a, b *model.Voyage) int {
		da, okA := VoyageDeviation(a)
		db, okB := VoyageDeviation(b)
		return compareOptional(optional(da, okA), optional(db, okB))
	},
}

// compareOptional sorts a missing value after every present one
func compareOptional(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

// sortKey normalizes "createdAt", "CreatedAt" and "created_at" to the same key
func sortKey(field string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(field), "_", ""))
}

// SortFields returns the accepted sort field names
func SortFields() []string {
	return []string{
		"createdAt", "distance", "engineEfficiency", "shipType", "routeId", "fuelType",
		"weatherConditions", "month", "predictedFuelConsumption", "actualFuelConsumption", "deviation",
	}
}

// plan is a validated HistoryQuery
type plan struct {
	category   model.DeviationCategory
	shipType   string
	weather    string
	compare    comparator
	descending bool
	pageNumber int
	pageSize   int
}

func newPlan(q model.HistoryQuery) (*plan, error) {
	p := &plan{
		shipType:   q.ShipType,
		weather:    q.WeatherCondition,
		descending: !strings.EqualFold(strings.TrimSpace(q.SortOrder), "asc"),
		pageNumber: q.PageNumber,
		pageSize:   ClampPageSize(q.PageSize),
	}

	if p.pageNumber < 1 {
		return nil, apperr.Validationf("pageNumber must be at least 1, got %d", q.PageNumber)
	}

	if p.shipType != "" && !model.IsShipType(p.shipType) {
		return nil, apperr.Validationf("unknown ship type %q", p.shipType)
	}
	if p.weather != "" && !model.IsWeatherCondition(p.weather) {
		return nil, apperr.Validationf("unknown weather condition %q", p.weather)
	}

	if q.DeviationCategory != "" {
		category, ok := ParseCategory(q.DeviationCategory)
		if !ok {
			return nil, apperr.Validationf("unknown deviation category %q", q.DeviationCategory)
		}
		p.category = category
	}

	if strings.TrimSpace(q.SortBy) == "" {
		p.compare = sortFields["createdat"]
		p.descending = true
	} else {
		compare, ok := sortFields[sortKey(q.SortBy)]
		if !ok {
			return nil, apperr.Validationf("unknown sort field %q", q.SortBy)
		}
		p.compare = compare
	}

	return p, nil
}

// ClampPageSize forces size into [1, MaxPageSize]
func ClampPageSize(size int) int {
	if size < 1 {
		return 1
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

func (p *plan) keep(v *model.Voyage) bool {
	if p.category != "" {
		category, ok := Classify(v)
		if !ok || category != p.category {
			return false
		}
	}
	if p.shipType != "" && v.ShipType != p.shipType {
		return false
	}
	if p.weather != "" && v.WeatherConditions != p.weather {
		return false
	}
	return true
}

// apply filters and sorts records into a new slice. Ties fall back to the id,
// in the same direction, so identical input always yields the same order.
func (p *plan) apply(records []model.Voyage, ownerID uint) []model.Voyage {
	out := make([]model.Voyage, 0, len(records))
	for i := range records {
		if records[i].OwnerID != ownerID {
			continue
		}
		if p.keep(&records[i]) {
			out = append(out, records[i])
		}
	}

	slices.SortStableFunc(out, func(a, b model.Voyage) int {
		c := p.compare(&a, &b)
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if p.descending {
			return -c
		}
		return c
	})
	return out
}

// Select returns the owner's records that match q, sorted as q asks, without pagination
func Select(records []model.Voyage, ownerID uint, q model.HistoryQuery) ([]model.Voyage, error) {
	p, err := newPlan(q)
	if err != nil {
		return nil, err
	}
	return p.apply(records, ownerID), nil
}

// Query filters, sorts and paginates the owner's records.
// Records owned by anyone else are dropped before any other step.
func Query(records []model.Voyage, ownerID uint, q model.HistoryQuery) (*model.PagedResult[model.VoyagePreview], error) {
	p, err := newPlan(q)
	if err != nil {
		return nil, err
	}

	matched := p.apply(records, ownerID)
	total := len(matched)

	// compare before multiplying; a huge pageNumber would overflow the offset
	start := total
	if p.pageNumber-1 <= total/p.pageSize {
		start = min((p.pageNumber-1)*p.pageSize, total)
	}
	end := min(start+p.pageSize, total)

	items := make([]model.VoyagePreview, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, Preview(&matched[i]))
	}

	return &model.PagedResult[model.VoyagePreview]{
		Items: items,
		Metadata: model.PaginationMetadata{
			TotalItemCount: total,
			PageSize:       p.pageSize,
			CurrentPage:    p.pageNumber,
			TotalPageCount: (total + p.pageSize - 1) / p.pageSize,
		},
	}, nil
}

// Preview projects a voyage to its listing fields
func Preview(v *model.Voyage) model.VoyagePreview {
	preview := model.VoyagePreview{
		ID:                       v.ID,
		CreatedAt:                v.CreatedAt,
		RouteID:                  v.RouteID,
		ShipType:                 v.ShipType,
		PredictedFuelConsumption: v.PredictedFuelConsumption,
		ActualFuelConsumption:    v.ActualFuelConsumption,
		Distance:                 v.Distance,
		EngineEfficiency:         v.EngineEfficiency,
		FuelType:                 v.FuelType,
		WeatherConditions:        v.WeatherConditions,
	}
	if d, ok := VoyageDeviation(v); ok {
		category := Categorize(d)
		preview.Deviation = &d
		preview.DeviationCategory = &category
	}
	return preview
}
