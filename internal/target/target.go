// Package target assembles and tracks the per-appliance runtime: one
// adguard client, one state handle outliving refresh cycles, and one
// coordinator per configured target. Command handlers resolve targets by
// name; an empty name means the first registered target.
package target

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oracledns/oracle/internal/adguard"
	"github.com/oracledns/oracle/internal/config"
	"github.com/oracledns/oracle/internal/coordinator"
	"github.com/oracledns/oracle/internal/state"
	"github.com/oracledns/oracle/internal/store"
)

// Target bundles everything owned by one configured appliance.
type Target struct {
	Name        string
	Client      *adguard.Client
	Handle      *state.Handle
	Coordinator *coordinator.Coordinator
}

// Registry holds all configured targets in registration order.
type Registry struct {
	ordered []*Target
	byName  map[string]*Target
}

// NewRegistry builds the runtime for every configured target, loading each
// target's persisted document from st.
func NewRegistry(cfgs []config.TargetConfig, st store.Store, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reg := &Registry{byName: make(map[string]*Target, len(cfgs))}
	for _, tc := range cfgs {
		tlog := logger.With("target", tc.Name)

		handle, err := state.Load(tc.Name, st, tlog)
		if err != nil {
			return nil, fmt.Errorf("load state for target %s: %w", tc.Name, err)
		}

		client := adguard.New(tc.Host, tc.Username, tc.Password, tlog)
		coord := coordinator.New(tc.Name, client, handle, time.Duration(tc.ScanInterval)*time.Second, tlog)

		t := &Target{Name: tc.Name, Client: client, Handle: handle, Coordinator: coord}
		reg.ordered = append(reg.ordered, t)
		reg.byName[tc.Name] = t
	}
	return reg, nil
}

// Resolve returns the named target, or the first registered one when name
// is empty. The second return is false when the name is unknown or no
// targets exist.
func (r *Registry) Resolve(name string) (*Target, bool) {
	if name == "" {
		if len(r.ordered) == 0 {
			return nil, false
		}
		return r.ordered[0], true
	}
	t, ok := r.byName[name]
	return t, ok
}

// All returns the targets in registration order.
func (r *Registry) All() []*Target {
	return r.ordered
}

// StartAll starts every coordinator. Targets already started are an error.
func (r *Registry) StartAll(ctx context.Context) error {
	for _, t := range r.ordered {
		if err := t.Coordinator.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// StopAll stops every coordinator, waiting for their loops to exit.
func (r *Registry) StopAll() {
	for _, t := range r.ordered {
		t.Coordinator.Stop()
	}
}
