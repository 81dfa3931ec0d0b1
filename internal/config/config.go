// Package config provides configuration loading and validation for oracled.
//
// Configuration lives in a single JSON file. Validate normalizes defaults
// (scheme, scan intervals, storage backend) so the rest of the code never
// has to re-check them.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoTargets is returned when the configuration names no appliances.
var ErrNoTargets = errors.New("config: at least one target is required")

// ResolveConfigPath picks the configuration file path: the explicit flag
// value wins, then the ORACLE_CONFIG environment variable, then oracle.json
// in the working directory.
func ResolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("ORACLE_CONFIG"); env != "" {
		return env
	}
	return "oracle.json"
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	if len(cfg.Targets) == 0 {
		return ErrNoTargets
	}

	seen := make(map[string]bool, len(cfg.Targets))
	for i := range cfg.Targets {
		t := &cfg.Targets[i]
		t.Host = strings.TrimRight(strings.TrimSpace(t.Host), "/")
		if t.Host == "" {
			return fmt.Errorf("config: targets[%d].host is required", i)
		}
		if !strings.HasPrefix(t.Host, "http://") && !strings.HasPrefix(t.Host, "https://") {
			t.Host = "http://" + t.Host
		}
		if t.Name == "" {
			t.Name = strings.TrimPrefix(strings.TrimPrefix(t.Host, "https://"), "http://")
		}
		if seen[t.Name] {
			return fmt.Errorf("config: duplicate target name %q", t.Name)
		}
		seen[t.Name] = true
		if t.ScanInterval <= 0 {
			t.ScanInterval = DefaultScanInterval
		}
	}

	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	// Normalize management API
	if cfg.API.Host == "" {
		cfg.API.Host = "0.0.0.0"
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = 8067
	}
	if cfg.API.Port < 0 || cfg.API.Port > 65535 {
		return errors.New("config: api.port must be 1..65535")
	}

	// Normalize storage
	switch strings.ToLower(strings.TrimSpace(cfg.Storage.Backend)) {
	case "", "sqlite":
		cfg.Storage.Backend = "sqlite"
		if cfg.Storage.Path == "" {
			cfg.Storage.Path = "oracle.db"
		}
	case "jsonfile":
		cfg.Storage.Backend = "jsonfile"
		if cfg.Storage.Path == "" {
			cfg.Storage.Path = "data"
		}
	default:
		return fmt.Errorf("config: unknown storage backend %q", cfg.Storage.Backend)
	}

	return nil
}

// FindTarget returns the target with the given name, or the first registered
// target when name is empty. The second return is false when no such target
// exists.
func (cfg *Config) FindTarget(name string) (*TargetConfig, bool) {
	if name == "" {
		if len(cfg.Targets) == 0 {
			return nil, false
		}
		return &cfg.Targets[0], true
	}
	for i := range cfg.Targets {
		if cfg.Targets[i].Name == name {
			return &cfg.Targets[i], true
		}
	}
	return nil, false
}
