package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oracledns/oracle/internal/config"
	"github.com/oracledns/oracle/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns one fresh store per backend so every test runs against
// both implementations.
func backends(t *testing.T) map[string]store.Store {
	t.Helper()

	sqlite, err := store.OpenSQLite(filepath.Join(t.TempDir(), "oracle.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	jsonfile, err := store.OpenJSONFile(t.TempDir())
	require.NoError(t, err)

	return map[string]store.Store{"sqlite": sqlite, "jsonfile": jsonfile}
}

func sampleDoc() *store.Document {
	return &store.Document{
		ControlledDevices: []string{"10.0.0.5", "10.0.0.2"},
		History: map[string]map[string]int{
			"10.0.0.2": {"2024-03-14": 3, "2024-03-15": 7},
			"laptop":   {"2024-03-15": 1},
		},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			doc := sampleDoc()
			doc.Normalize()
			require.NoError(t, s.Save("home", doc))

			got, err := s.Load("home")
			require.NoError(t, err)

			assert.Equal(t, []string{"10.0.0.2", "10.0.0.5"}, got.ControlledDevices)
			assert.Equal(t, doc.History, got.History)
		})
	}
}

func TestStore_UnknownTargetIsEmpty(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Load("never-saved")
			require.NoError(t, err)
			assert.Empty(t, got.ControlledDevices)
			assert.Empty(t, got.History)
			assert.NotNil(t, got.History, "history map must be usable immediately")
		})
	}
}

func TestStore_SaveReplacesWholeDocument(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save("home", sampleDoc()))

			smaller := store.NewDocument()
			smaller.ControlledDevices = []string{"10.0.0.9"}
			require.NoError(t, s.Save("home", smaller))

			got, err := s.Load("home")
			require.NoError(t, err)
			assert.Equal(t, []string{"10.0.0.9"}, got.ControlledDevices)
			assert.Empty(t, got.History, "removed history must not survive a save")
		})
	}
}

func TestStore_TargetsAreIsolated(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save("home", sampleDoc()))

			other := store.NewDocument()
			other.ControlledDevices = []string{"192.168.0.1"}
			require.NoError(t, s.Save("office", other))

			home, err := s.Load("home")
			require.NoError(t, err)
			office, err := s.Load("office")
			require.NoError(t, err)

			assert.NotEqual(t, home.ControlledDevices, office.ControlledDevices)
		})
	}
}

func TestDocument_NormalizeDeduplicates(t *testing.T) {
	doc := &store.Document{
		ControlledDevices: []string{"b", "a", "b", "", "a"},
	}
	doc.Normalize()

	assert.Equal(t, []string{"a", "b"}, doc.ControlledDevices)
	assert.NotNil(t, doc.History)
}

func TestJSONFileStore_CorruptFileErrors(t *testing.T) {
	dir := t.TempDir()
	s, err := store.OpenJSONFile(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "home.json"), []byte("{nope"), 0o644))
	_, err = s.Load("home")
	assert.Error(t, err)
}

func TestJSONFileStore_TargetNameSanitized(t *testing.T) {
	dir := t.TempDir()
	s, err := store.OpenJSONFile(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save("http://adguard.local:3000", store.NewDocument()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "/")
	assert.NotContains(t, entries[0].Name(), ":")
}

func TestOpen_BackendSelection(t *testing.T) {
	dir := t.TempDir()

	s, err := store.Open(config.StorageConfig{Backend: "sqlite", Path: filepath.Join(dir, "o.db")})
	require.NoError(t, err)
	assert.IsType(t, &store.SQLiteStore{}, s)
	s.Close()

	s, err = store.Open(config.StorageConfig{Backend: "jsonfile", Path: dir})
	require.NoError(t, err)
	assert.IsType(t, &store.JSONFileStore{}, s)

	_, err = store.Open(config.StorageConfig{Backend: "redis"})
	assert.Error(t, err)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oracle.db")

	s, err := store.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save("home", sampleDoc()))
	require.NoError(t, s.Close())

	s, err = store.OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load("home")
	require.NoError(t, err)
	assert.Equal(t, 7, got.History["10.0.0.2"]["2024-03-15"])
}
