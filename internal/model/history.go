package model

import "time"

// DeviationCategory buckets a voyage by how far the actual consumption drifted from the forecast
type DeviationCategory string

const (
	DeviationSaving   DeviationCategory = "Saving"
	DeviationNormal   DeviationCategory = "Normal"
	DeviationWarning  DeviationCategory = "Warning"
	DeviationCritical DeviationCategory = "Critical"
)

// DeviationCategories lists the buckets from lowest to highest deviation
var DeviationCategories = []DeviationCategory{DeviationSaving, DeviationNormal, DeviationWarning, DeviationCritical}

// HistoryQuery holds the caller-supplied listing parameters
type HistoryQuery struct {
	PageNumber        int    `form:"pageNumber,default=1" json:"pageNumber"`
	PageSize          int    `form:"pageSize,default=10" json:"pageSize"`
	DeviationCategory string `form:"deviationCategory" json:"deviationCategory,omitempty"`
	ShipType          string `form:"shipType" json:"shipType,omitempty"`
	WeatherCondition  string `form:"weatherCondition" json:"weatherCondition,omitempty"`
	SortBy            string `form:"sortBy" json:"sortBy,omitempty"`
	SortOrder         string `form:"sortOrder,default=desc" json:"sortOrder,omitempty"`
}

// VoyagePreview is the listing projection of a voyage
type VoyagePreview struct {
	ID                       uint               `json:"id"`
	CreatedAt                time.Time          `json:"createdAt"`
	RouteID                  string             `json:"routeId"`
	ShipType                 string             `json:"shipType"`
	PredictedFuelConsumption float64            `json:"predictedFuelConsumption"`
	ActualFuelConsumption    *float64           `json:"actualFuelConsumption"`
	Distance                 float64            `json:"distance"`
	EngineEfficiency         float64            `json:"engineEfficiency"`
	FuelType                 string             `json:"fuelType"`
	WeatherConditions        string             `json:"weatherConditions"`
	Deviation                *float64           `json:"deviation,omitempty"`
	DeviationCategory        *DeviationCategory `json:"deviationCategory,omitempty"`
}

// PaginationMetadata describes the page returned alongside the items
type PaginationMetadata struct {
	TotalItemCount int `json:"totalItemCount"`
	PageSize       int `json:"pageSize"`
	CurrentPage    int `json:"currentPage"`
	TotalPageCount int `json:"totalPageCount"`
}

// PagedResult is one page of a listing
type PagedResult[T any] struct {
	Items    []T                `json:"items"`
	Metadata PaginationMetadata `json:"metadata"`
}
