// Package coordinator drives the periodic refresh cycle for one target:
// fetch clients from the appliance, aggregate today's query counts, update
// history, and publish a read-model snapshot for the API.
//
// Exactly one cycle runs at a time per target. On-demand refreshes wait for
// an in-flight cycle to finish; ticker triggers that collide with one are
// coalesced (skipped). A failed cycle leaves the previously published
// snapshot untouched.
package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oracledns/oracle/internal/adguard"
	"github.com/oracledns/oracle/internal/aggregate"
	"github.com/oracledns/oracle/internal/state"
)

// State names one phase of the refresh cycle.
type State string

const (
	StateIdle        State = "idle"
	StateFetching    State = "fetching"
	StateAggregating State = "aggregating"
	StatePublishing  State = "publishing"
	StateFailed      State = "failed"
)

// ApplianceClient is the slice of the appliance API the coordinator needs.
type ApplianceClient interface {
	Clients(ctx context.Context) ([]adguard.ClientRecord, error)
	Queries(ctx context.Context, clientID string) []adguard.QueryEntry
}

// ClientSnapshot is one row of the published read model.
type ClientSnapshot struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	IP           string   `json:"ip,omitempty"`
	QueriesToday int      `json:"queries_today"`
	AvgPerDay    *float64 `json:"avg_per_day,omitempty"`
	Controlled   bool     `json:"controlled"`
}

// Status is a point-in-time view of the coordinator, mirroring what the
// status endpoint reports.
type Status struct {
	Target          string     `json:"target"`
	State           State      `json:"state"`
	ScanInterval    int        `json:"scan_interval"`
	ClientCount     int        `json:"client_count"`
	LastRefreshTime *time.Time `json:"last_refresh_time,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
	NextRefreshTime *time.Time `json:"next_refresh_time,omitempty"`
	RefreshCount    int64      `json:"refresh_count"`
	ErrorCount      int64      `json:"error_count"`
}

// Coordinator owns the refresh loop for a single target.
type Coordinator struct {
	target string
	client ApplianceClient
	handle *state.Handle
	logger *slog.Logger
	now    func() time.Time

	mu          sync.RWMutex
	st          State
	snapshot    []ClientSnapshot
	interval    time.Duration
	lastRefresh *time.Time
	lastErr     string
	nextRefresh *time.Time
	refreshes   int64
	errors      int64

	// refreshMu serializes cycles; ticker triggers TryLock and skip.
	refreshMu sync.Mutex

	running    bool
	intervalCh chan time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// New creates a coordinator. The interval is the scan period; it can be
// changed at runtime with SetInterval.
func New(target string, client ApplianceClient, handle *state.Handle, interval time.Duration, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		target:     target,
		client:     client,
		handle:     handle,
		logger:     logger,
		now:        time.Now,
		st:         StateIdle,
		interval:   interval,
		intervalCh: make(chan time.Duration, 1),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start runs an initial refresh and then launches the periodic loop.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("coordinator for %s already running", c.target)
	}
	c.running = true
	c.mu.Unlock()

	c.logger.Info("coordinator starting", "target", c.target, "interval", c.Interval())

	if err := c.RefreshNow(ctx); err != nil {
		c.logger.Warn("initial refresh failed, will retry on schedule", "target", c.target, "err", err)
	}

	go c.runLoop(ctx)
	return nil
}

// Stop terminates the periodic loop and waits for it to exit.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.mu.Unlock()

	close(c.stopCh)
	<-c.doneCh
	c.logger.Info("coordinator stopped", "target", c.target)
}

// RefreshNow runs one refresh cycle, waiting for any in-flight cycle first.
func (c *Coordinator) RefreshNow(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	return c.cycle(ctx)
}

// SetInterval changes the scan period. The running loop reschedules on the
// next iteration; no restart is required.
func (c *Coordinator) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.interval = d
	c.mu.Unlock()

	select {
	case c.intervalCh <- d:
	default:
	}
}

// Interval returns the current scan period.
func (c *Coordinator) Interval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.interval
}

// Snapshot returns the last successfully published read model.
func (c *Coordinator) Snapshot() []ClientSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ClientSnapshot, len(c.snapshot))
	copy(out, c.snapshot)
	return out
}

// Status reports the coordinator's current state and counters.
func (c *Coordinator) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Status{
		Target:          c.target,
		State:           c.st,
		ScanInterval:    int(c.interval / time.Second),
		ClientCount:     len(c.snapshot),
		LastRefreshTime: c.lastRefresh,
		LastError:       c.lastErr,
		NextRefreshTime: c.nextRefresh,
		RefreshCount:    c.refreshes,
		ErrorCount:      c.errors,
	}
}

func (c *Coordinator) runLoop(ctx context.Context) {
	defer close(c.doneCh)

	interval := c.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		next := c.now().Add(interval)
		c.mu.Lock()
		c.nextRefresh = &next
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case d := <-c.intervalCh:
			interval = d
			ticker.Reset(d)
			c.logger.Info("scan interval updated", "target", c.target, "interval", d)
		case <-ticker.C:
			// Coalesce: skip the tick when a cycle is still in flight.
			if !c.refreshMu.TryLock() {
				c.logger.Debug("refresh in progress, skipping tick", "target", c.target)
				continue
			}
			if err := c.cycle(ctx); err != nil {
				c.logger.Warn("refresh failed", "target", c.target, "err", err)
			}
			c.refreshMu.Unlock()
		}
	}
}

// cycle executes one fetch-aggregate-publish pass. Callers must hold
// refreshMu.
func (c *Coordinator) cycle(ctx context.Context) error {
	c.setState(StateFetching)

	clients, err := c.client.Clients(ctx)
	if err != nil {
		c.recordError(err)
		return fmt.Errorf("refresh %s: %w", c.target, err)
	}

	c.setState(StateAggregating)

	now := c.now()
	day := aggregate.Day(now)

	snapshot := make([]ClientSnapshot, 0, len(clients))
	for _, rec := range clients {
		id := rec.Identifier()
		if id == "" {
			id = "unknown"
		}

		// Query-log fetches are sequential and best-effort; a failed
		// fetch degrades that client to zero queries for this cycle.
		searchKey := rec.IP
		if searchKey == "" {
			searchKey = id
		}
		count := aggregate.CountToday(c.client.Queries(ctx, searchKey), now)
		c.handle.RecordToday(id, day, count)

		row := ClientSnapshot{
			ID:           id,
			Name:         rec.Name,
			IP:           rec.IP,
			QueriesToday: count,
			Controlled:   c.handle.IsControlled(id),
		}
		if avg, ok := c.handle.AverageFor(id); ok {
			row.AvgPerDay = &avg
		}
		snapshot = append(snapshot, row)
	}

	c.setState(StatePublishing)
	c.publish(snapshot)
	c.setState(StateIdle)

	c.logger.Debug("refresh completed", "target", c.target, "clients", len(snapshot))
	return nil
}

func (c *Coordinator) publish(snapshot []ClientSnapshot) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = snapshot
	c.lastRefresh = &now
	c.lastErr = ""
	c.refreshes++
}

func (c *Coordinator) setState(st State) {
	c.mu.Lock()
	c.st = st
	c.mu.Unlock()
}

func (c *Coordinator) recordError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.st = StateFailed
	c.lastErr = err.Error()
	c.errors++
}
