// Package models defines request and response types for the oracled REST
// API. All types are JSON-serializable.
package models

import "github.com/oracledns/oracle/internal/coordinator"

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a simple status response.
type StatusResponse struct {
	Status string `json:"status"`
}

// ClientListResponse carries the published read model for one target.
type ClientListResponse struct {
	Target  string                       `json:"target"`
	Clients []coordinator.ClientSnapshot `json:"clients"`
}

// ClientHistoryResponse carries one client's daily history and average.
type ClientHistoryResponse struct {
	Target    string         `json:"target"`
	ClientID  string         `json:"client_id"`
	Days      map[string]int `json:"days"`
	AvgPerDay *float64       `json:"avg_per_day,omitempty"`
}

// ControlledListResponse lists the controlled devices of one target.
type ControlledListResponse struct {
	Target  string   `json:"target"`
	Devices []string `json:"devices"`
	Count   int      `json:"count"`
}

// ControlledResponse reports the controlled flag after a mark/unmark.
type ControlledResponse struct {
	Target     string `json:"target"`
	ClientID   string `json:"client_id"`
	Controlled bool   `json:"controlled"`
}

// BlockRequest asks for a domain to be blocked for one client.
type BlockRequest struct {
	Domain string `json:"domain" binding:"required"`
}

// IntervalRequest updates a target's scan interval at runtime.
type IntervalRequest struct {
	ScanInterval int `json:"scan_interval" binding:"required,min=1"`
}

// TargetConfigResponse is one target with secrets redacted.
type TargetConfigResponse struct {
	Name         string `json:"name"`
	Host         string `json:"host"`
	Username     string `json:"username,omitempty"`
	ScanInterval int    `json:"scan_interval"`
}

// ConfigResponse is the redacted runtime configuration.
type ConfigResponse struct {
	Targets        []TargetConfigResponse `json:"targets"`
	StorageBackend string                 `json:"storage_backend"`
}

// SystemStats holds host-level metrics for the stats endpoint.
type SystemStats struct {
	MemoryUsedPercent float64 `json:"memory_used_percent"`
	MemoryTotalMB     float64 `json:"memory_total_mb"`
	Load1             float64 `json:"load1,omitempty"`
	HostUptimeSeconds uint64  `json:"host_uptime_seconds,omitempty"`
}

// ServerStatsResponse is the stats endpoint payload.
type ServerStatsResponse struct {
	Uptime        string      `json:"uptime"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	GoRoutines    int         `json:"goroutines"`
	MemoryAllocMB float64     `json:"memory_alloc_mb"`
	NumCPU        int         `json:"num_cpu"`
	Targets       int         `json:"targets"`
	System        SystemStats `json:"system"`
}
