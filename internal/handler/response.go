package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"optifuel/api/internal/apperr"
	"optifuel/api/internal/middleware"
)

// ownerKey is the gin context key holding the authenticated user id
const ownerKey = middleware.OwnerKey

var statusByCode = map[apperr.Code]int{
	apperr.Validation:   http.StatusBadRequest,
	apperr.NotFound:     http.StatusNotFound,
	apperr.Unauthorized: http.StatusUnauthorized,
	apperr.Unavailable:  http.StatusServiceUnavailable,
	apperr.Internal:     http.StatusInternalServerError,
}

// respondError writes err as {"error": message} with the status of its code.
// Internal errors are attached to the context for the logger and never shown.
func respondError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": apperr.MessageOf(err)})
}

// respondBindError reports a request that failed binding
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// getOwnerID 从上下文中获取当前用户ID
func getOwnerID(c *gin.Context) uint {
	return c.GetUint(ownerKey)
}

// parseID reads the :id path parameter
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
