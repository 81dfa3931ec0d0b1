package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/oracledns/oracle/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"debug":   slog.LevelDebug,
		" info ":  slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}

	for in, want := range cases {
		assert.Equal(t, want, logging.ParseLevel(in), "input %q", in)
	}
}

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: "INFO"}, &buf, false)
	require.NotNil(t, logger)

	logger.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=v")
}

func TestNew_JSONOutputWithExtraFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{
		Level:       "DEBUG",
		Format:      "json",
		ExtraFields: map[string]string{"instance": "home"},
	}, &buf, false)

	logger.Debug("probe")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "probe", rec["msg"])
	assert.Equal(t, "home", rec["instance"])
}

func TestNew_LevelFiltersRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: "ERROR"}, &buf, false)

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Error("kept")
	assert.Contains(t, buf.String(), "kept")
}
