package model

import (
	"fmt"
	"time"
)

// Ship types accepted by the prediction service
const (
	ShipTypeOilServiceBoat = "Oil Service Boat"
	ShipTypeFishingTrawler = "Fishing Trawler"
	ShipTypeSurferBoat     = "Surfer Boat"
	ShipTypeTankerShip     = "Tanker Ship"
)

// Routes
const (
	RouteWarriBonny        = "Warri-Bonny"
	RoutePortHarcourtLagos = "Port Harcourt-Lagos"
	RouteLagosApapa        = "Lagos-Apapa"
	RouteEscravosLagos     = "Escravos-Lagos"
)

// Fuel types
const (
	FuelTypeHFO    = "HFO"
	FuelTypeDiesel = "Diesel"
)

// Weather conditions
const (
	WeatherCalm     = "Calm"
	WeatherModerate = "Moderate"
	WeatherStormy   = "Stormy"
)

var (
	ShipTypes         = []string{ShipTypeOilServiceBoat, ShipTypeFishingTrawler, ShipTypeSurferBoat, ShipTypeTankerShip}
	Routes            = []string{RouteWarriBonny, RoutePortHarcourtLagos, RouteLagosApapa, RouteEscravosLagos}
	FuelTypes         = []string{FuelTypeHFO, FuelTypeDiesel}
	WeatherConditions = []string{WeatherCalm, WeatherModerate, WeatherStormy}
)

// IsShipType reports whether s is a known ship type
func IsShipType(s string) bool { return contains(ShipTypes, s) }

// IsRoute reports whether s is a known route
func IsRoute(s string) bool { return contains(Routes, s) }

// IsFuelType reports whether s is a known fuel type
func IsFuelType(s string) bool { return contains(FuelTypes, s) }

// IsWeatherCondition reports whether s is a known weather condition
func IsWeatherCondition(s string) bool { return contains(WeatherConditions, s) }

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Voyage is one forecast/outcome pair owned by a single user.
// Prediction fields are written once at creation; only ActualFuelConsumption changes afterwards.
type Voyage struct {
	ID                       uint      `json:"id" gorm:"primaryKey"`
	CreatedAt                time.Time `json:"createdAt" gorm:"not null;<-:create"`
	Distance                 float64   `json:"distance" gorm:"not null;<-:create"`
	EngineEfficiency         float64   `json:"engineEfficiency" gorm:"not null;<-:create"`
	ShipType                 string    `json:"shipType" gorm:"type:varchar(32);not null;<-:create"`
	RouteID                  string    `json:"routeId" gorm:"type:varchar(32);not null;<-:create"`
	FuelType                 string    `json:"fuelType" gorm:"type:varchar(16);not null;<-:create"`
	WeatherConditions        string    `json:"weatherConditions" gorm:"type:varchar(16);not null;<-:create"`
	Month                    int       `json:"month" gorm:"not null;<-:create"`
	PredictedFuelConsumption float64   `json:"predictedFuelConsumption" gorm:"not null;<-:create"`
	ActualFuelConsumption    *float64  `json:"actualFuelConsumption"`
	OwnerID                  uint      `json:"-" gorm:"not null;index;<-:create"`
}

func (Voyage) TableName() string {
	return "voyages"
}

// HasActual reports whether the owner has reported the observed consumption
func (v *Voyage) HasActual() bool {
	return v.ActualFuelConsumption != nil
}

// PredictionRequest is the voyage description sent to the prediction service.
// The same body creates a voyage.
type PredictionRequest struct {
	Distance          float64 `json:"distance" binding:"required,gte=0.1,lte=10000"`
	EngineEfficiency  float64 `json:"engine_efficiency" binding:"required,gte=1,lte=100"`
	ShipType          string  `json:"ship_type" binding:"required"`
	RouteID           string  `json:"route_id" binding:"required"`
	FuelType          string  `json:"fuel_type" binding:"required"`
	WeatherConditions string  `json:"weather_conditions" binding:"required"`
	Month             int     `json:"month" binding:"required,gte=1,lte=12"`
}

// Validate checks the enumerated fields, which binding tags do not cover
func (r *PredictionRequest) Validate() error {
	switch {
	case !IsShipType(r.ShipType):
		return fmt.Errorf("invalid ship type %q", r.ShipType)
	case !IsRoute(r.RouteID):
		return fmt.Errorf("invalid route id %q", r.RouteID)
	case !IsFuelType(r.FuelType):
		return fmt.Errorf("invalid fuel type %q, must be 'HFO' or 'Diesel'", r.FuelType)
	case !IsWeatherCondition(r.WeatherConditions):
		return fmt.Errorf("invalid weather conditions %q", r.WeatherConditions)
	}
	return nil
}

// PredictionFor rebuilds the prediction input of an existing voyage
func PredictionFor(v *Voyage) *PredictionRequest {
	return &PredictionRequest{
		Distance:          v.Distance,
		EngineEfficiency:  v.EngineEfficiency,
		ShipType:          v.ShipType,
		RouteID:           v.RouteID,
		FuelType:          v.FuelType,
		WeatherConditions: v.WeatherConditions,
		Month:             v.Month,
	}
}

// PredictionResponse is returned by the prediction service
type PredictionResponse struct {
	PredictedFuelConsumption float64 `json:"predicted_fuel_consumption"`
}

// UpdateVoyageRequest reports the observed consumption of a voyage
type UpdateVoyageRequest struct {
	ActualFuelConsumption float64 `json:"actualFuelConsumption" binding:"required,gt=0"`
}

// VoyageEventType identifies a voyage lifecycle event
type VoyageEventType string

const (
	VoyageEventCreated VoyageEventType = "voyage.created"
	VoyageEventUpdated VoyageEventType = "voyage.updated"
)

// VoyageEvent is published whenever a voyage is created or its actual consumption changes
type VoyageEvent struct {
	Type      VoyageEventType `json:"type"`
	OwnerID   uint            `json:"ownerId"`
	Voyage    Voyage          `json:"voyage"`
	Timestamp time.Time       `json:"timestamp"`
}
