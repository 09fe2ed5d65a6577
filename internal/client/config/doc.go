// Package config loads runtime configuration for the workbench client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with --config/-c. Files ending in .yaml
//     or .yml are YAML; anything else is JSON with comments allowed.
//  3. Environment: a .env file in the working directory (if present), then
//     WORKBENCH_* variables.
//  4. Command-line flags set explicitly (see RegisterFlags).
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  // provider started with `authstub`
//	  "provider_url": "http://127.0.0.1:7071",
//	  "store_backend": "sqlite",
//	  "store_dsn": "workbench.db",
//	  "request_timeout": "10s",
//	  "revalidate_delay": "2s",
//	  "bootstrap_mode": "optimistic",
//	  "listen_addr": "127.0.0.1:7070",
//	  "log_level": "info",
//	  "log_format": "console"
//	}
//
// Primary API
//
//   - type Config                            — runtime settings
//   - func RegisterFlags(*pflag.FlagSet)     — declares the flags
//   - func LoadConfig(*pflag.FlagSet)        — defaults, file, env, then flags
//   - func (*Config) LoadDefaults()          — sets sensible defaults
package config
