// Package state owns the mutable per-target document shared by the refresh
// cycle and the command surface.
//
// A Handle is created once per configured target and passed to every
// component that needs it; nothing reaches for ambient global state. All
// mutations are serialized by the handle's mutex, and every mutation
// triggers a best-effort save: persistence failures are logged and the
// in-memory document stays authoritative until the next successful save.
package state

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/oracledns/oracle/internal/store"
)

// Handle wraps one target's document with serialized, persisting mutations.
type Handle struct {
	target string
	store  store.Store
	logger *slog.Logger

	mu  sync.Mutex
	doc *store.Document
}

// Load reads the target's persisted document and wraps it in a Handle.
func Load(target string, st store.Store, logger *slog.Logger) (*Handle, error) {
	doc, err := st.Load(target)
	if err != nil {
		return nil, err
	}
	doc.Normalize()

	if logger == nil {
		logger = slog.Default()
	}
	return &Handle{target: target, store: st, logger: logger, doc: doc}, nil
}

// Target returns the target name this handle belongs to.
func (h *Handle) Target() string {
	return h.target
}

// Mark adds clientID to the controlled set. Idempotent: marking an already
// controlled client is a no-op apart from the save.
func (h *Handle) Mark(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.controlledSetLocked()
	set[clientID] = true
	h.writeControlledLocked(set)
	h.saveLocked()
}

// Unmark removes clientID from the controlled set. Idempotent.
func (h *Handle) Unmark(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.controlledSetLocked()
	delete(set, clientID)
	h.writeControlledLocked(set)
	h.saveLocked()
}

// IsControlled reports whether clientID is currently controlled.
func (h *Handle) IsControlled(clientID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.controlledSetLocked()[clientID]
}

// Controlled returns the controlled set as a sorted slice.
func (h *Handle) Controlled() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.doc.ControlledDevices))
	copy(out, h.doc.ControlledDevices)
	return out
}

// RecordToday overwrites the history entry for (clientID, day) with count.
// Repeated writes within the same day replace, never accumulate.
func (h *Handle) RecordToday(clientID, day string, count int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	days := h.doc.History[clientID]
	if days == nil {
		days = map[string]int{}
		h.doc.History[clientID] = days
	}
	days[day] = count
	h.saveLocked()
}

// AverageFor returns the arithmetic mean over all recorded days for
// clientID. The second return is false when no history exists yet.
func (h *Handle) AverageFor(clientID string) (float64, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	days := h.doc.History[clientID]
	if len(days) == 0 {
		return 0, false
	}

	sum := 0
	for _, count := range days {
		sum += count
	}
	return float64(sum) / float64(len(days)), true
}

// HistoryFor returns a copy of the per-day counts recorded for clientID.
func (h *Handle) HistoryFor(clientID string) map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()

	days := h.doc.History[clientID]
	out := make(map[string]int, len(days))
	for day, count := range days {
		out[day] = count
	}
	return out
}

// controlledSetLocked materializes the persisted sequence as a set. Going
// through the set on every mutation guards against duplicates introduced by
// older documents.
func (h *Handle) controlledSetLocked() map[string]bool {
	set := make(map[string]bool, len(h.doc.ControlledDevices))
	for _, id := range h.doc.ControlledDevices {
		set[id] = true
	}
	return set
}

// writeControlledLocked serializes the set back to a sorted sequence.
func (h *Handle) writeControlledLocked(set map[string]bool) {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	h.doc.ControlledDevices = out
}

// saveLocked persists the whole document, best-effort. A failed save is
// logged and otherwise ignored; the in-memory document remains the source
// of truth until a later save succeeds.
func (h *Handle) saveLocked() {
	if err := h.store.Save(h.target, h.doc); err != nil {
		h.logger.Warn("document save failed", "target", h.target, "err", err)
	}
}
