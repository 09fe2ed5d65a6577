package config

import (
	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig          = "config"
	FlagProvider        = "provider"
	FlagStore           = "store"
	FlagStoreDSN        = "store-dsn"
	FlagTimeout         = "timeout"
	FlagRevalidateDelay = "revalidate-delay"
	FlagBootstrap       = "bootstrap"
	FlagListen          = "listen"
	FlagLogLevel        = "log-level"
	FlagLogFormat       = "log-format"
)

// RegisterFlags adds the client's flags to fs. Defaults shown in help come
// from LoadDefaults; only flags set explicitly override other sources.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a config file (.json, .jsonc, .yaml)")
	fs.String(FlagProvider, d.ProviderURL, "authentication provider base URL")
	fs.String(FlagStore, d.StoreBackend, "session store backend: sqlite, keyring or memory")
	fs.String(FlagStoreDSN, d.StoreDSN, "sqlite database path")
	fs.Duration(FlagTimeout, d.RequestTimeout, "provider request timeout")
	fs.Duration(FlagRevalidateDelay, d.RevalidateDelay, "delay before a restored session is revalidated")
	fs.String(FlagBootstrap, d.BootstrapMode, "bootstrap mode: optimistic or strict")
	fs.String(FlagListen, d.ListenAddr, "web shell listen address")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.String(FlagLogFormat, d.LogFormat, "log format: console, json or text")
}

func configPath(fs *pflag.FlagSet) string {
	if fs == nil || fs.Lookup(FlagConfig) == nil {
		return ""
	}
	p, err := fs.GetString(FlagConfig)
	if err != nil {
		panic(err)
	}
	return p
}

// parseFlags overlays cfg with the flags in fs that were set explicitly.
// A nil fs is a no-op.
func parseFlags(cfg *Config, fs *pflag.FlagSet) {
	if fs == nil {
		return
	}

	stringFlags := map[string]*string{
		FlagProvider:  &cfg.ProviderURL,
		FlagStore:     &cfg.StoreBackend,
		FlagStoreDSN:  &cfg.StoreDSN,
		FlagBootstrap: &cfg.BootstrapMode,
		FlagListen:    &cfg.ListenAddr,
		FlagLogLevel:  &cfg.LogLevel,
		FlagLogFormat: &cfg.LogFormat,
	}
	for name, dst := range stringFlags {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			panic(err)
		}
		*dst = v
	}

	if fs.Changed(FlagTimeout) {
		v, err := fs.GetDuration(FlagTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = v
	}
	if fs.Changed(FlagRevalidateDelay) {
		v, err := fs.GetDuration(FlagRevalidateDelay)
		if err != nil {
			panic(err)
		}
		cfg.RevalidateDelay = v
	}
}
