package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"optifuel/api/internal/analytics"
	"optifuel/api/internal/apperr"
	"optifuel/api/internal/model"
	"optifuel/api/internal/store"
)

// VoyageRepository stores voyages. Reads and updates are scoped to an owner.
type VoyageRepository interface {
	Create(ctx context.Context, v *model.Voyage) error
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Voyage, error)
	Get(ctx context.Context, ownerID, id uint) (*model.Voyage, error)
	UpdateActual(ctx context.Context, ownerID, id uint, actual float64) (*model.Voyage, error)
}

// Invalidator drops derived data of an owner after a write
type Invalidator interface {
	Invalidate(ctx context.Context, ownerID uint) error
}

// VoyageService handles voyage business logic
type VoyageService struct {
	voyages     VoyageRepository
	predictor   Predictor
	events      EventPublisher
	invalidator Invalidator
	logger      *slog.Logger
	now         func() time.Time
}

// NewVoyageService creates a voyage service. events and invalidator may be nil.
func NewVoyageService(voyages VoyageRepository, predictor Predictor, events EventPublisher, invalidator Invalidator, logger *slog.Logger) *VoyageService {
	return &VoyageService{
		voyages:     voyages,
		predictor:   predictor,
		events:      events,
		invalidator: invalidator,
		logger:      logger.With("component", "voyages"),
		now:         time.Now,
	}
}

func validatePrediction(req *model.PredictionRequest) error {
	if err := req.Validate(); err != nil {
		return apperr.Wrap(apperr.Validation, err.Error(), err)
	}
	return nil
}

// Predict forecasts consumption without storing anything
func (s *VoyageService) Predict(ctx context.Context, req *model.PredictionRequest) (*model.PredictionResponse, error) {
	if err := validatePrediction(req); err != nil {
		return nil, err
	}
	predicted, err := s.predictor.Predict(ctx, req)
	if err != nil {
		s.logger.Error("stateless prediction failed", "error", err)
		return nil, err
	}
	return &model.PredictionResponse{PredictedFuelConsumption: predicted}, nil
}

// Create forecasts consumption for req and stores the voyage for ownerID
func (s *VoyageService) Create(ctx context.Context, ownerID uint, req *model.PredictionRequest) (*model.Voyage, error) {
	if err := validatePrediction(req); err != nil {
		return nil, err
	}

	predicted, err := s.predictor.Predict(ctx, req)
	if err != nil {
		s.logger.Error("prediction failed", "owner_id", ownerID, "error", err)
		return nil, err
	}

	v := &model.Voyage{
		CreatedAt:                s.now().UTC(),
		Distance:                 req.Distance,
		EngineEfficiency:         req.EngineEfficiency,
		ShipType:                 req.ShipType,
		RouteID:                  req.RouteID,
		FuelType:                 req.FuelType,
		WeatherConditions:        req.WeatherConditions,
		Month:                    req.Month,
		PredictedFuelConsumption: predicted,
		OwnerID:                  ownerID,
	}
	if err := s.voyages.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create voyage: %w", err)
	}

	s.logger.Info("voyage created", "voyage_id", v.ID, "owner_id", ownerID)
	s.afterWrite(ctx, model.VoyageEventCreated, v)
	return v, nil
}

// List returns every voyage of ownerID, newest first
func (s *VoyageService) List(ctx context.Context, ownerID uint) ([]model.Voyage, error) {
	voyages, err := s.voyages.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list voyages: %w", err)
	}
	return voyages, nil
}

// Get returns voyage id. Voyages of other owners are reported as not found.
func (s *VoyageService) Get(ctx context.Context, ownerID, id uint) (*model.Voyage, error) {
	v, err := s.voyages.Get(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return v, nil
}

// UpdateActual records the observed consumption of voyage id
func (s *VoyageService) UpdateActual(ctx context.Context, ownerID, id uint, actual float64) (*model.Voyage, error) {
	if !(actual > 0) || math.IsInf(actual, 0) {
		return nil, apperr.Validationf("actualFuelConsumption must be a positive number, got %v", actual)
	}

	v, err := s.voyages.UpdateActual(ctx, ownerID, id, actual)
	if err != nil {
		return nil, notFound(err, id)
	}

	s.logger.Info("voyage actual consumption updated", "voyage_id", id, "owner_id", ownerID)
	s.afterWrite(ctx, model.VoyageEventUpdated, v)
	return v, nil
}

// Explain asks the prediction service which features drove the forecast of voyage id
func (s *VoyageService) Explain(ctx context.Context, ownerID, id uint) (map[string]float64, error) {
	v, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	contributions, err := s.predictor.Explain(ctx, model.PredictionFor(v))
	if err != nil {
		s.logger.Error("explanation failed", "voyage_id", id, "error", err)
		return nil, err
	}
	return contributions, nil
}

// History runs a filtered, sorted and paginated query over ownerID's voyages
func (s *VoyageService) History(ctx context.Context, ownerID uint, q model.HistoryQuery) (*model.PagedResult[model.VoyagePreview], error) {
	records, err := s.voyages.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return analytics.Query(records, ownerID, q)
}

// Matching returns every voyage of ownerID that q selects, in q's order, unpaginated
func (s *VoyageService) Matching(ctx context.Context, ownerID uint, q model.HistoryQuery) ([]model.Voyage, error) {
	records, err := s.voyages.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return analytics.Select(records, ownerID, q)
}

// afterWrite invalidates cached views and publishes an event. Failures are logged only.
func (s *VoyageService) afterWrite(ctx context.Context, eventType model.VoyageEventType, v *model.Voyage) {
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, v.OwnerID); err != nil {
			s.logger.Warn("analytics cache invalidation failed", "owner_id", v.OwnerID, "error", err)
		}
	}
	if s.events == nil {
		return
	}
	event := &model.VoyageEvent{
		Type:      eventType,
		OwnerID:   v.OwnerID,
		Voyage:    *v,
		Timestamp: s.now().UTC(),
	}
	if err := s.events.PublishVoyageEvent(ctx, event); err != nil {
		s.logger.Warn("voyage event publish failed", "type", eventType, "voyage_id", v.ID, "error", err)
	}
}

func notFound(err error, id uint) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.New(apperr.NotFound, fmt.Sprintf("voyage %d not found", id))
	}
	return err
}
