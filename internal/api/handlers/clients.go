package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oracledns/oracle/internal/api/models"
)

// ListClients godoc
// @Summary Client read model
// @Description Returns the last published per-client snapshot for a target
// @Tags clients
// @Produce json
// @Param target query string false "Target name (default: first registered)"
// @Success 200 {object} models.ClientListResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /clients [get]
func (h *Handler) ListClients(c *gin.Context) {
	t, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.ClientListResponse{
		Target:  t.Name,
		Clients: t.Coordinator.Snapshot(),
	})
}

// ClientHistory godoc
// @Summary Client daily history
// @Description Returns recorded per-day query counts and the running average
// @Tags clients
// @Produce json
// @Param clientID path string true "Client identifier"
// @Param target query string false "Target name (default: first registered)"
// @Success 200 {object} models.ClientHistoryResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /clients/{clientID}/history [get]
func (h *Handler) ClientHistory(c *gin.Context) {
	t, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	clientID := c.Param("clientID")
	resp := models.ClientHistoryResponse{
		Target:   t.Name,
		ClientID: clientID,
		Days:     t.Handle.HistoryFor(clientID),
	}
	if avg, ok := t.Handle.AverageFor(clientID); ok {
		resp.AvgPerDay = &avg
	}

	c.JSON(http.StatusOK, resp)
}

// BlockDomain godoc
// @Summary Block a domain for a client
// @Description Adds a client-scoped blocking rule on the appliance; repeat calls are idempotent
// @Tags clients
// @Accept json
// @Produce json
// @Param clientID path string true "Client identifier"
// @Param target query string false "Target name (default: first registered)"
// @Param request body models.BlockRequest true "Domain to block"
// @Success 200 {object} models.StatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /clients/{clientID}/block [post]
func (h *Handler) BlockDomain(c *gin.Context) {
	t, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	var req models.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	clientID := c.Param("clientID")
	if !t.Client.BlockDomain(c.Request.Context(), clientID, req.Domain) {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "appliance rejected the rule update"})
		return
	}

	h.logger.Info("domain blocked", "target", t.Name, "client", clientID, "domain", req.Domain)
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}
