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

// FileConfig is the file DTO. Durations use timex.Duration. A non-empty
// users list replaces the default directory.
type FileConfig struct {
	ListenAddr string         `json:"listen_addr" yaml:"listen_addr"`
	SecretKey  string         `json:"secret_key" yaml:"secret_key"`
	TokenTTL   timex.Duration `json:"token_ttl" yaml:"token_ttl"`
	Users      []UserSeed     `json:"users" yaml:"users"`
	LogLevel   string         `json:"log_level" yaml:"log_level"`
	LogFormat  string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays config with values loaded from path (YAML for .yaml
// and .yml, JSON with comments otherwise). Panics on read or parse errors.
func parseFile(config *Config, path string) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), c)
	}
	if err != nil {
		panic(err)
	}

	if c.ListenAddr != "" {
		config.ListenAddr = c.ListenAddr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenTTL.Duration != 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if len(c.Users) > 0 {
		config.Users = c.Users
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.LogFormat != "" {
		config.LogFormat = c.LogFormat
	}
}
