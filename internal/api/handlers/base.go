// Package handlers implements the REST API endpoint handlers for oracled.
//
// REST API Endpoints:
//
// System:
//   - GET /api/v1/health - health check
//   - GET /api/v1/stats - process and host statistics
//   - GET /api/v1/config - redacted runtime configuration
//
// Per target (select with the optional ?target= query parameter; when it is
// omitted the first registered target is used):
//   - GET /api/v1/clients - published client read model
//   - GET /api/v1/clients/:clientID/history - daily counts and average
//   - POST /api/v1/clients/:clientID/block - block a domain for a client
//   - GET /api/v1/controlled - list controlled devices
//   - POST /api/v1/controlled/:clientID - mark controlled
//   - DELETE /api/v1/controlled/:clientID - unmark controlled
//   - POST /api/v1/refresh - trigger a refresh cycle now
//   - GET /api/v1/status - refresh coordinator status
//   - PUT /api/v1/config/interval - update the scan interval at runtime
//
// Authentication: when an API key is configured every endpoint requires the
// X-API-Key header.
//
// @title Oracle Management API
// @version 1.0
// @description REST API for the oracled DNS-filtering client tracker.
//
// @host localhost:8067
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oracledns/oracle/internal/api/models"
	"github.com/oracledns/oracle/internal/config"
	"github.com/oracledns/oracle/internal/target"
)

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	registry  *target.Registry
	logger    *slog.Logger
	startTime time.Time
}

// New creates a Handler over the given configuration and target registry.
func New(cfg *config.Config, registry *target.Registry, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:       cfg,
		registry:  registry,
		logger:    logger,
		startTime: time.Now(),
	}
}

// resolveTarget picks the target named by the ?target= query parameter,
// falling back to the first registered target. Writes a 404 and returns
// false when the name is unknown.
func (h *Handler) resolveTarget(c *gin.Context) (*target.Target, bool) {
	name := c.Query("target")
	t, ok := h.registry.Resolve(name)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "unknown target: " + name})
		return nil, false
	}
	return t, true
}
