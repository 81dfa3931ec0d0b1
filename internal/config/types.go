package config

// DefaultScanInterval is the per-target refresh interval in seconds used
// when a target does not configure one.
const DefaultScanInterval = 60

// TargetConfig describes one DNS-filtering appliance to poll.
type TargetConfig struct {
	// Name identifies the target in the API and in the persisted store.
	// Defaults to the host when empty.
	Name string `json:"name"`

	// Host is the appliance address. A missing scheme defaults to http://.
	Host string `json:"host"`

	// Username and Password enable HTTP Basic auth when either is set.
	Username string `json:"username"`
	Password string `json:"password"`

	// ScanInterval is the refresh period in seconds (default 60).
	ScanInterval int `json:"scan_interval"`
}

// APIConfig contains management API settings.
//
// Note: APIKey is a secret and must not be returned by API endpoints.
type APIConfig struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	APIKey string `json:"api_key,omitempty"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level       string            `json:"level"`
	Format      string            `json:"format"` // "text" or "json"
	IncludePID  bool              `json:"include_pid"`
	ExtraFields map[string]string `json:"extra_fields,omitempty"`
}

// StorageConfig selects the durable store backend.
type StorageConfig struct {
	// Backend is "sqlite" (default) or "jsonfile".
	Backend string `json:"backend"`

	// Path is the database file for sqlite, or the directory holding
	// per-target documents for jsonfile.
	Path string `json:"path"`
}

// Config is the root configuration structure.
type Config struct {
	Targets []TargetConfig `json:"targets"`
	API     APIConfig      `json:"api"`
	Logging LoggingConfig  `json:"logging"`
	Storage StorageConfig  `json:"storage"`
}
