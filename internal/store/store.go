// Package store provides durable whole-document persistence for oracled.
//
// Each configured target owns one Document holding its controlled-device
// set and per-client daily history. The contract is deliberately coarse:
// load the whole document once at startup, save the whole document after
// each mutation. Two backends exist, a SQLite database (default) and plain
// JSON files, selected by configuration.
package store

import (
	"fmt"

	"github.com/oracledns/oracle/internal/config"
)

// Store is the durable storage primitive. Implementations must treat Save
// as a full replace of the target's document.
type Store interface {
	// Load returns the persisted document for target, or a fresh empty
	// document when none was saved yet.
	Load(target string) (*Document, error)

	// Save persists the document for target, replacing whatever was
	// stored before.
	Save(target string, doc *Document) error

	Close() error
}

// Open constructs the backend selected by cfg.
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return OpenSQLite(cfg.Path)
	case "jsonfile":
		return OpenJSONFile(cfg.Path)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
}
