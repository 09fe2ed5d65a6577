package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the client reads.
const EnvPrefix = "WORKBENCH_"

// Environment variables.
const (
	EnvProviderURL     = EnvPrefix + "PROVIDER_URL"
	EnvStoreBackend    = EnvPrefix + "STORE"
	EnvStoreDSN        = EnvPrefix + "STORE_DSN"
	EnvRequestTimeout  = EnvPrefix + "REQUEST_TIMEOUT"
	EnvRevalidateDelay = EnvPrefix + "REVALIDATE_DELAY"
	EnvBootstrapMode   = EnvPrefix + "BOOTSTRAP"
	EnvListenAddr      = EnvPrefix + "LISTEN_ADDR"
	EnvLogLevel        = EnvPrefix + "LOG_LEVEL"
	EnvLogFormat       = EnvPrefix + "LOG_FORMAT"
)

// DotEnvFile is loaded into the process environment before variables are
// read. Variables already set win over the file.
var DotEnvFile = ".env"

// parseEnv overlays cfg with WORKBENCH_* variables. Durations use Go syntax
// ("750ms", "5s"). Panics on a malformed .env file or duration.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	envString(&cfg.ProviderURL, EnvProviderURL)
	envString(&cfg.StoreBackend, EnvStoreBackend)
	envString(&cfg.StoreDSN, EnvStoreDSN)
	envString(&cfg.BootstrapMode, EnvBootstrapMode)
	envString(&cfg.ListenAddr, EnvListenAddr)
	envString(&cfg.LogLevel, EnvLogLevel)
	envString(&cfg.LogFormat, EnvLogFormat)
	envDuration(&cfg.RequestTimeout, EnvRequestTimeout)
	envDuration(&cfg.RevalidateDelay, EnvRevalidateDelay)
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
