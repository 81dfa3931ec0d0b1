package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oracledns/oracle/internal/api/models"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// Health godoc
// @Summary Health check
// @Description Returns server health status
// @Tags system
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}

// Stats godoc
// @Summary Server statistics
// @Description Returns process statistics plus host memory, load and uptime
// @Tags system
// @Produce json
// @Success 200 {object} models.ServerStatsResponse
// @Security ApiKeyAuth
// @Router /stats [get]
func (h *Handler) Stats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		GoRoutines:    runtime.NumGoroutine(),
		MemoryAllocMB: float64(m.Alloc) / 1024 / 1024,
		NumCPU:        runtime.NumCPU(),
		Targets:       len(h.registry.All()),
		System:        h.systemStats(),
	}

	c.JSON(http.StatusOK, resp)
}

// systemStats gathers host-level metrics. Every probe is best-effort:
// platforms without a given metric just leave it zero.
func (h *Handler) systemStats() models.SystemStats {
	var sys models.SystemStats

	if vm, err := mem.VirtualMemory(); err == nil {
		sys.MemoryUsedPercent = vm.UsedPercent
		sys.MemoryTotalMB = float64(vm.Total) / 1024 / 1024
	}
	if avg, err := load.Avg(); err == nil {
		sys.Load1 = avg.Load1
	}
	if up, err := host.Uptime(); err == nil {
		sys.HostUptimeSeconds = up
	}

	return sys
}

// GetConfig godoc
// @Summary Runtime configuration
// @Description Returns the configuration with secrets redacted
// @Tags system
// @Produce json
// @Success 200 {object} models.ConfigResponse
// @Security ApiKeyAuth
// @Router /config [get]
func (h *Handler) GetConfig(c *gin.Context) {
	resp := models.ConfigResponse{
		Targets:        make([]models.TargetConfigResponse, 0, len(h.cfg.Targets)),
		StorageBackend: h.cfg.Storage.Backend,
	}

	for _, tc := range h.cfg.Targets {
		scan := tc.ScanInterval
		if t, ok := h.registry.Resolve(tc.Name); ok {
			// Report the live interval, which may have been updated
			// since startup.
			scan = int(t.Coordinator.Interval() / time.Second)
		}
		resp.Targets = append(resp.Targets, models.TargetConfigResponse{
			Name:         tc.Name,
			Host:         tc.Host,
			Username:     tc.Username,
			ScanInterval: scan,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateInterval godoc
// @Summary Update scan interval
// @Description Changes a target's scan interval without restarting it
// @Tags system
// @Accept json
// @Produce json
// @Param target query string false "Target name (default: first registered)"
// @Param interval body models.IntervalRequest true "New interval in seconds"
// @Success 200 {object} models.StatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /config/interval [put]
func (h *Handler) UpdateInterval(c *gin.Context) {
	t, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	var req models.IntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	t.Coordinator.SetInterval(time.Duration(req.ScanInterval) * time.Second)
	h.logger.Info("scan interval updated via api", "target", t.Name, "seconds", req.ScanInterval)

	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}
