// Package logging configures the process-wide slog logger for oracled.
//
// Output goes to stderr. The format is either plain text or JSON depending
// on configuration; every record can be enriched with static fields (useful
// when multiple oracled instances feed the same log collector) and the PID.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls logger construction.
type Config struct {
	Level       string
	Format      string // "text" (default) or "json"
	IncludePID  bool
	ExtraFields map[string]string
}

// Setup builds the logger, installs it as the slog default and returns it.
func Setup(cfg Config) *slog.Logger {
	return New(cfg, os.Stderr, true)
}

// New builds a logger writing to w. When install is true it also becomes the
// slog default. Split out from Setup so tests can capture output.
func New(cfg Config, w io.Writer, install bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	if attrs := staticAttrs(cfg); len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	logger := slog.New(handler)
	if install {
		slog.SetDefault(logger)
	}
	return logger
}

func staticAttrs(cfg Config) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(cfg.ExtraFields)+1)
	for k, v := range cfg.ExtraFields {
		attrs = append(attrs, slog.String(k, v))
	}
	if cfg.IncludePID {
		attrs = append(attrs, slog.Int("pid", os.Getpid()))
	}
	return attrs
}

// ParseLevel maps a level name to a slog.Level, defaulting to INFO for
// empty or unknown values.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
