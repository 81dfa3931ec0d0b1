package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oracledns/oracle/internal/api/models"
)

// ListControlled godoc
// @Summary List controlled devices
// @Description Returns the sorted controlled-device set for a target
// @Tags controlled
// @Produce json
// @Param target query string false "Target name (default: first registered)"
// @Success 200 {object} models.ControlledListResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /controlled [get]
func (h *Handler) ListControlled(c *gin.Context) {
	t, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	devices := t.Handle.Controlled()
	c.JSON(http.StatusOK, models.ControlledListResponse{
		Target:  t.Name,
		Devices: devices,
		Count:   len(devices),
	})
}

// MarkControlled godoc
// @Summary Mark a client as controlled
// @Description Adds the client to the controlled set; marking twice equals marking once
// @Tags controlled
// @Produce json
// @Param clientID path string true "Client identifier"
// @Param target query string false "Target name (default: first registered)"
// @Success 200 {object} models.ControlledResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /controlled/{clientID} [post]
func (h *Handler) MarkControlled(c *gin.Context) {
	t, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	clientID := c.Param("clientID")
	t.Handle.Mark(clientID)
	h.logger.Info("client marked controlled", "target", t.Name, "client", clientID)

	c.JSON(http.StatusOK, models.ControlledResponse{
		Target:     t.Name,
		ClientID:   clientID,
		Controlled: true,
	})
}

// UnmarkControlled godoc
// @Summary Unmark a controlled client
// @Description Removes the client from the controlled set; unmarking an absent client is a no-op
// @Tags controlled
// @Produce json
// @Param clientID path string true "Client identifier"
// @Param target query string false "Target name (default: first registered)"
// @Success 200 {object} models.ControlledResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /controlled/{clientID} [delete]
func (h *Handler) UnmarkControlled(c *gin.Context) {
	t, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	clientID := c.Param("clientID")
	t.Handle.Unmark(clientID)
	h.logger.Info("client unmarked", "target", t.Name, "client", clientID)

	c.JSON(http.StatusOK, models.ControlledResponse{
		Target:     t.Name,
		ClientID:   clientID,
		Controlled: false,
	})
}
