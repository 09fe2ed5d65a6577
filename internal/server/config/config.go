// Package config handles configuration for the stub authentication
// provider, including defaults, a file overlay, environment variables and
// command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// UserSeed describes one account the stub provider knows about. Exactly
// one of Password and PasswordHash must be set; PasswordHash uses the form
// produced by cryptox.PasswordHash.String.
type UserSeed struct {
	ID           string `json:"id" yaml:"id"`
	Username     string `json:"username" yaml:"username"`
	Email        string `json:"email" yaml:"email"`
	Role         string `json:"role" yaml:"role"`
	Password     string `json:"password" yaml:"password"`
	PasswordHash string `json:"password_hash" yaml:"password_hash"`
	DisplayName  string `json:"display_name" yaml:"display_name"`
	Department   string `json:"department" yaml:"department"`
}

// Config holds runtime settings for the stub provider.
//
// Fields:
//   - ListenAddr: bind address of the HTTP API.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenTTL: access token lifetime.
//   - Users: the user directory.
//   - LogLevel / LogFormat: logger settings.
type Config struct {
	ListenAddr string
	SecretKey  string
	TokenTTL   time.Duration
	Users      []UserSeed
	LogLevel   string
	LogFormat  string
}

// LoadDefaults populates Config with development defaults: two accounts,
// "admin"/"admin" and "operator"/"operator".
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = "127.0.0.1:7071"
	c.SecretKey = "secretKey"
	c.TokenTTL = 1 * time.Hour
	c.Users = []UserSeed{
		{ID: "1", Username: "admin", Email: "admin@example.com", Role: "admin", Password: "admin", DisplayName: "Administrator"},
		{ID: "2", Username: "operator", Email: "operator@example.com", Role: "standard_user", Password: "operator", Department: "Operations"},
	}
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// Validate rejects values the stub cannot run with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file, the environment and finally the flags set
// explicitly in fs. Loader panics are returned as errors.
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
