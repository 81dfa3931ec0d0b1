package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// JSONFileStore persists one JSON document per target under a directory.
// Writes go through a temp file plus rename so a crash mid-save never
// leaves a truncated document behind.
type JSONFileStore struct {
	dir string
	mu  sync.Mutex
}

// OpenJSONFile prepares a JSON-file store rooted at dir, creating the
// directory when needed.
func OpenJSONFile(dir string) (*JSONFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &JSONFileStore{dir: dir}, nil
}

// Close is a no-op; files are closed after every operation.
func (s *JSONFileStore) Close() error {
	return nil
}

// Load reads the target's document, returning an empty one when the file
// does not exist yet.
func (s *JSONFileStore) Load(target string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path(target))
	if os.IsNotExist(err) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

// Save replaces the target's document on disk.
func (s *JSONFileStore) Save(target string, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	path := s.path(target)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

func (s *JSONFileStore) path(target string) string {
	return filepath.Join(s.dir, sanitizeTarget(target)+".json")
}

// sanitizeTarget makes a target name safe to use as a file name.
func sanitizeTarget(target string) string {
	if target == "" {
		return "default"
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	return replacer.Replace(target)
}
