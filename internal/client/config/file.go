package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/aiworkbench/internal/timex"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file unmarshalling. Durations go
// through timex.Duration so they can be strings like "3s" or integer
// nanoseconds. Empty fields leave the current value untouched.
type FileConfig struct {
	ProviderURL     string         `json:"provider_url" yaml:"provider_url"`
	StoreBackend    string         `json:"store_backend" yaml:"store_backend"`
	StoreDSN        string         `json:"store_dsn" yaml:"store_dsn"`
	RequestTimeout  timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	RevalidateDelay timex.Duration `json:"revalidate_delay" yaml:"revalidate_delay"`
	BootstrapMode   string         `json:"bootstrap_mode" yaml:"bootstrap_mode"`
	ListenAddr      string         `json:"listen_addr" yaml:"listen_addr"`
	LoginPath       string         `json:"login_path" yaml:"login_path"`
	LandingPath     string         `json:"landing_path" yaml:"landing_path"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
	LogFormat       string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with values from the file at path.
//
// Files ending in .yaml or .yml are parsed as YAML; anything else as JSON
// with comments and trailing commas allowed. An empty path is a no-op.
// Panics on read or unmarshal errors.
func parseFile(cfg *Config, path string) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &fc)
	}
	if err != nil {
		panic(err)
	}

	setString(&cfg.ProviderURL, fc.ProviderURL)
	setString(&cfg.StoreBackend, fc.StoreBackend)
	setString(&cfg.StoreDSN, fc.StoreDSN)
	setString(&cfg.BootstrapMode, fc.BootstrapMode)
	setString(&cfg.ListenAddr, fc.ListenAddr)
	setString(&cfg.LoginPath, fc.LoginPath)
	setString(&cfg.LandingPath, fc.LandingPath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.RevalidateDelay.Duration != 0 {
		cfg.RevalidateDelay = fc.RevalidateDelay.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
