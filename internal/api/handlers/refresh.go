package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oracledns/oracle/internal/api/models"
)

// Refresh godoc
// @Summary Refresh now
// @Description Runs one refresh cycle immediately, waiting for any cycle already in flight
// @Tags refresh
// @Produce json
// @Param target query string false "Target name (default: first registered)"
// @Success 200 {object} coordinator.Status
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	t, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	if err := t.Coordinator.RefreshNow(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, t.Coordinator.Status())
}

// TargetStatus godoc
// @Summary Coordinator status
// @Description Returns the refresh coordinator's state and counters
// @Tags refresh
// @Produce json
// @Param target query string false "Target name (default: first registered)"
// @Success 200 {object} coordinator.Status
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /status [get]
func (h *Handler) TargetStatus(c *gin.Context) {
	t, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, t.Coordinator.Status())
}
