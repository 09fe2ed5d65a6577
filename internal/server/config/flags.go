package config

import (
	"github.com/spf13/pflag"
)

// RegisterFlags declares the stub's flags on fs.
//
//	-c, --config string      config file (.json, .jsonc, .yaml)
//	-a, --address string     address and port to listen on
//	-s, --secret string      JWT signing secret
//	-t, --token-ttl duration access token lifetime
//	    --log-level string
//	    --log-format string
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP("config", "c", "", "config file (.json, .jsonc, .yaml)")
	fs.StringP("address", "a", d.ListenAddr, "address and port to listen on")
	fs.StringP("secret", "s", d.SecretKey, "JWT signing secret")
	fs.DurationP("token-ttl", "t", d.TokenTTL, "access token lifetime")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn, error")
	fs.String("log-format", d.LogFormat, "log format: console, json or text")
}

func configPath(fs *pflag.FlagSet) string {
	if fs == nil || fs.Lookup("config") == nil {
		return ""
	}
	p, err := fs.GetString("config")
	if err != nil {
		panic(err)
	}
	return p
}

// parseFlags overlays config with flags set explicitly in fs.
func parseFlags(config *Config, fs *pflag.FlagSet) {
	if fs == nil {
		return
	}

	for name, dst := range map[string]*string{
		"address":    &config.ListenAddr,
		"secret":     &config.SecretKey,
		"log-level":  &config.LogLevel,
		"log-format": &config.LogFormat,
	} {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			panic(err)
		}
		*dst = v
	}

	if fs.Changed("token-ttl") {
		v, err := fs.GetDuration("token-ttl")
		if err != nil {
			panic(err)
		}
		config.TokenTTL = v
	}
}
