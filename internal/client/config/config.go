package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Store backends.
const (
	StoreSQLite  = "sqlite"
	StoreKeyring = "keyring"
	StoreMemory  = "memory"
)

// Bootstrap modes (see services.BootstrapMode).
const (
	BootstrapOptimistic = "optimistic"
	BootstrapStrict     = "strict"
)

// Config holds runtime settings for the workbench client.
//
// Fields:
//   - ProviderURL: base URL of the authentication provider.
//   - StoreBackend, StoreDSN: where the session is kept. DSN is only used by
//     the sqlite backend.
//   - RequestTimeout: bound on every provider request.
//   - RevalidateDelay: how long a restored session is trusted before the
//     provider is asked about it.
//   - BootstrapMode: "optimistic" or "strict".
//   - ListenAddr, LoginPath, LandingPath: web shell settings.
//   - LogLevel, LogFormat: logger settings ("console", "json" or "text").
type Config struct {
	ProviderURL     string
	StoreBackend    string
	StoreDSN        string
	RequestTimeout  time.Duration
	RevalidateDelay time.Duration
	BootstrapMode   string
	ListenAddr      string
	LoginPath       string
	LandingPath     string
	LogLevel        string
	LogFormat       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ProviderURL = "http://127.0.0.1:7071"
	c.StoreBackend = StoreSQLite
	c.StoreDSN = "workbench.db"
	c.RequestTimeout = 10 * time.Second
	c.RevalidateDelay = 2 * time.Second
	c.BootstrapMode = BootstrapOptimistic
	c.ListenAddr = "127.0.0.1:7070"
	c.LoginPath = "/login"
	c.LandingPath = "/dashboard"
	c.LogLevel = "info"
	c.LogFormat = "console"
}

// Validate rejects values the client cannot run with.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreSQLite, StoreKeyring, StoreMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	switch c.BootstrapMode {
	case BootstrapOptimistic, BootstrapStrict:
	default:
		return fmt.Errorf("unknown bootstrap mode %q", c.BootstrapMode)
	}
	if c.ProviderURL == "" {
		return fmt.Errorf("provider url is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if any), the environment and the flags in fs that were
// set explicitly. Later sources take precedence over earlier ones.
//
// The individual loaders panic on malformed input; LoadConfig turns such a
// panic into an error.
func LoadConfig(fs *pflag.FlagSet) (cfg *Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			cfg, err = nil, fmt.Errorf("load config: %v", r)
		}
	}()

	cfg = &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, configPath(fs))
	parseEnv(cfg)
	parseFlags(cfg, fs)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
