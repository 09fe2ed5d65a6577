package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	DotEnvFile = filepath.Join(t.TempDir(), "missing.env")
	t.Cleanup(func() { DotEnvFile = ".env" })
	for _, k := range []string{EnvListenAddr, EnvSecretKey, EnvTokenTTL, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:7071", c.ListenAddr)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, time.Hour, c.TokenTTL)
	require.Len(t, c.Users, 2)
	assert.Equal(t, "admin", c.Users[0].Role)
	assert.Equal(t, "standard_user", c.Users[1].Role)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	isolateEnv(t)

	c, err := LoadConfig(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, c))
}

func TestLoadConfig_Layers(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "authstub.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr: 127.0.0.1:9000
token_ttl: 5m
users:
  - id: "7"
    username: carol
    role: admin
    password: pw
`), 0o600))

	t.Setenv(EnvSecretKey, "from-env")
	t.Setenv(EnvTokenTTL, "10m")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-c", path, "-a", ":8000"}))

	c, err := LoadConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, ":8000", c.ListenAddr)
	assert.Equal(t, "from-env", c.SecretKey)
	assert.Equal(t, 10*time.Minute, c.TokenTTL)
	require.Len(t, c.Users, 1)
	assert.Equal(t, "carol", c.Users[0].Username)
}

func TestLoadConfig_Errors(t *testing.T) {
	isolateEnv(t)

	t.Run("bad json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))

		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		RegisterFlags(fs)
		require.NoError(t, fs.Parse([]string{"--config", bad}))

		_, err := LoadConfig(fs)
		assert.Error(t, err)
	})

	t.Run("bad env duration", func(t *testing.T) {
		t.Setenv(EnvTokenTTL, "forever")
		_, err := LoadConfig(nil)
		assert.Error(t, err)
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		RegisterFlags(fs)
		require.NoError(t, fs.Parse([]string{"-t", "0s"}))

		_, err := LoadConfig(fs)
		assert.ErrorContains(t, err, "ttl")
	})
}

func TestParseFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-a", "127.0.0.1:9090", "-s", "secret", "-t", "1m", "--log-format", "console"}))

	config := &Config{}
	require.NotPanics(t, func() { parseFlags(config, fs) })
	assert.Empty(t, cmp.Diff(config, &Config{
		ListenAddr: "127.0.0.1:9090",
		SecretKey:  "secret",
		TokenTTL:   time.Minute,
		LogFormat:  "console",
	}))
}
