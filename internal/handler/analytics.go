package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"optifuel/api/internal/model"
)

// AnalyticsService is the dashboard API used by AnalyticsHandler
type AnalyticsService interface {
	Summary(ctx context.Context, ownerID uint) (*model.AnalyticsSummary, error)
	Charts(ctx context.Context, ownerID uint) (*model.AnalyticsCharts, error)
}

// AnalyticsHandler serves the dashboard views
type AnalyticsHandler struct {
	analytics AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analytics AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Summary returns account-wide totals
// @Summary Analytics summary
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AnalyticsSummary
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.analytics.Summary(c.Request.Context(), getOwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Charts returns the chart views
// @Summary Analytics charts
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AnalyticsCharts
// @Router /analytics/charts [get]
func (h *AnalyticsHandler) Charts(c *gin.Context) {
	charts, err := h.analytics.Charts(c.Request.Context(), getOwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, charts)
}
