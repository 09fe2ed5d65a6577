package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	isolateEnv(t)

	t.Run("variables", func(t *testing.T) {
		t.Setenv(EnvStoreBackend, StoreKeyring)
		t.Setenv(EnvRevalidateDelay, "5s")

		cfg := &Config{StoreBackend: StoreSQLite, ListenAddr: ":1"}
		parseEnv(cfg)

		assert.Equal(t, StoreKeyring, cfg.StoreBackend)
		assert.Equal(t, 5*time.Second, cfg.RevalidateDelay)
		assert.Equal(t, ":1", cfg.ListenAddr, "empty variables are ignored")
	})

	t.Run("dotenv file", func(t *testing.T) {
		DotEnvFile = filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(DotEnvFile, []byte("WORKBENCH_LOG_FORMAT=json\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv(EnvLogFormat) })
		require.NoError(t, os.Unsetenv(EnvLogFormat))

		cfg := &Config{}
		parseEnv(cfg)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("bad duration → panics", func(t *testing.T) {
		t.Setenv(EnvRequestTimeout, "soon")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
