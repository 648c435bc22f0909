package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"optifuel/api/internal/model"
)

// VoyageService is the voyage API used by the voyage and history handlers
type VoyageService interface {
	Predict(ctx context.Context, req *model.PredictionRequest) (*model.PredictionResponse, error)
	Create(ctx context.Context, ownerID uint, req *model.PredictionRequest) (*model.Voyage, error)
	List(ctx context.Context, ownerID uint) ([]model.Voyage, error)
	Get(ctx context.Context, ownerID, id uint) (*model.Voyage, error)
	UpdateActual(ctx context.Context, ownerID, id uint, actual float64) (*model.Voyage, error)
	Explain(ctx context.Context, ownerID, id uint) (map[string]float64, error)
	History(ctx context.Context, ownerID uint, q model.HistoryQuery) (*model.PagedResult[model.VoyagePreview], error)
	Matching(ctx context.Context, ownerID uint, q model.HistoryQuery) ([]model.Voyage, error)
}

// VoyageHandler handles voyage-related requests
type VoyageHandler struct {
	voyages VoyageService
}

// NewVoyageHandler creates a new voyage handler
func NewVoyageHandler(voyages VoyageService) *VoyageHandler {
	return &VoyageHandler{voyages: voyages}
}

// Predict returns a forecast without storing a voyage
// @Summary Predict fuel consumption
// @Tags Prediction
// @Accept json
// @Produce json
// @Param request body model.PredictionRequest true "Voyage description"
// @Success 200 {object} model.PredictionResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /predict [post]
func (h *VoyageHandler) Predict(c *gin.Context) {
	var req model.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.voyages.Predict(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns every voyage of the caller
// @Summary List voyages
// @Description All voyages of the current user, newest first
// @Tags Voyages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Voyage
// @Failure 401 {object} map[string]string
// @Router /voyages [get]
func (h *VoyageHandler) List(c *gin.Context) {
	voyages, err := h.voyages.List(c.Request.Context(), getOwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, voyages)
}

// Get returns a single voyage
// @Summary Get voyage
// @Tags Voyages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Voyage ID"
// @Success 200 {object} model.Voyage
// @Failure 404 {object} map[string]string
// @Router /voyages/{id} [get]
func (h *VoyageHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	voyage, err := h.voyages.Get(c.Request.Context(), getOwnerID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, voyage)
}

// Create forecasts and stores a voyage
// @Summary Create voyage
// @Tags Voyages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.PredictionRequest true "Voyage description"
// @Success 201 {object} model.Voyage
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /voyages/create [post]
func (h *VoyageHandler) Create(c *gin.Context) {
	var req model.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	voyage, err := h.voyages.Create(c.Request.Context(), getOwnerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/voyages/%d", voyage.ID))
	c.JSON(http.StatusCreated, voyage)
}

// Update records the actual consumption of a voyage
// @Summary Report actual consumption
// @Tags Voyages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Voyage ID"
// @Param request body model.UpdateVoyageRequest true "Actual consumption"
// @Success 200 {object} model.Voyage
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /voyages/{id} [put]
func (h *VoyageHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateVoyageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	voyage, err := h.voyages.UpdateActual(c.Request.Context(), getOwnerID(c), id, req.ActualFuelConsumption)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, voyage)
}

// Explain returns the feature contributions behind a voyage forecast
// @Summary Explain forecast
// @Tags Voyages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Voyage ID"
// @Success 200 {object} map[string]number
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /voyages/{id}/explain [post]
func (h *VoyageHandler) Explain(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	contributions, err := h.voyages.Explain(c.Request.Context(), getOwnerID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contributions)
}
