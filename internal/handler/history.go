package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"optifuel/api/internal/model"
	"optifuel/api/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HistoryHandler serves the voyage history query
type HistoryHandler struct {
	voyages VoyageService
	now     func() time.Time
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(voyages VoyageService) *HistoryHandler {
	return &HistoryHandler{voyages: voyages, now: time.Now}
}

// List returns one page of the caller's filtered and sorted history
// @Summary Voyage history
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param pageNumber query int false "Page number" default(1)
// @Param pageSize query int false "Page size, clamped to 1..50" default(10)
// @Param deviationCategory query string false "Saving, Normal, Warning or Critical"
// @Param shipType query string false "Ship type"
// @Param weatherCondition query string false "Weather condition"
// @Param sortBy query string false "Sort field" default(createdAt)
// @Param sortOrder query string false "asc or desc" default(desc)
// @Success 200 {object} model.PagedResult[model.VoyagePreview]
// @Failure 400 {object} map[string]string
// @Router /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	var q model.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.voyages.History(c.Request.Context(), getOwnerID(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Export returns every matching voyage as a spreadsheet. Pagination parameters are ignored.
// @Summary Export voyage history
// @Tags History
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param deviationCategory query string false "Saving, Normal, Warning or Critical"
// @Param shipType query string false "Ship type"
// @Param weatherCondition query string false "Weather condition"
// @Param sortBy query string false "Sort field" default(createdAt)
// @Param sortOrder query string false "asc or desc" default(desc)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /history/export [get]
func (h *HistoryHandler) Export(c *gin.Context) {
	var q model.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	q.PageNumber = 1

	voyages, err := h.voyages.Matching(c.Request.Context(), getOwnerID(c), q)
	if err != nil {
		respondError(c, err)
		return
	}

	buf, err := service.ExportHistory(voyages)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("voyage-history-%s.xlsx", h.now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
