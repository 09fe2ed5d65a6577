package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvListenAddr = "AUTHSTUB_LISTEN_ADDR"
	EnvSecretKey  = "AUTHSTUB_SECRET_KEY"
	EnvTokenTTL   = "AUTHSTUB_TOKEN_TTL"
	EnvLogLevel   = "AUTHSTUB_LOG_LEVEL"
	EnvLogFormat  = "AUTHSTUB_LOG_FORMAT"
)

// DotEnvFile is loaded before variables are read, if it exists.
var DotEnvFile = ".env"

// parseEnv overlays config with AUTHSTUB_* variables. Panics on a malformed
// .env file or duration.
func parseEnv(config *Config) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v := os.Getenv(EnvListenAddr); v != "" {
		config.ListenAddr = v
	}
	if v := os.Getenv(EnvSecretKey); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv(EnvTokenTTL); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.TokenTTL = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		config.LogFormat = v
	}
}
