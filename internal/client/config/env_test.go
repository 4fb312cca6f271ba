package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Variables(t *testing.T) {
	envFile = filepath.Join(t.TempDir(), "missing.env")

	t.Setenv(envServerBaseURL, "https://api.example.com")
	t.Setenv(envDatabasePath, "/tmp/x.db")
	t.Setenv(envRequestTimeout, "2500ms")
	t.Setenv(envSplashDuration, "0s")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envKeystorePassphrase, "secret")
	t.Setenv(envEphemeral, "true")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, Config{
		ServerBaseURL:      "https://api.example.com",
		DatabasePath:       "/tmp/x.db",
		RequestTimeout:     2500 * time.Millisecond,
		SplashDuration:     0,
		LogLevel:           "debug",
		KeystorePassphrase: "secret",
		Ephemeral:          true,
	}, *cfg)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SNAPFEED_LOG_LEVEL=warn\nSNAPFEED_SERVER_URL=http://dotenv/api\n"), 0o600))
	envFile = path

	// Process environment wins over the file.
	t.Setenv(envServerBaseURL, "http://process/api")
	t.Cleanup(func() { _ = os.Unsetenv(envLogLevel) })

	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "http://process/api", cfg.ServerBaseURL)
}

func TestParseEnv_Invalid(t *testing.T) {
	envFile = filepath.Join(t.TempDir(), "missing.env")

	t.Run("duration", func(t *testing.T) {
		t.Setenv(envRequestTimeout, "soon")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
	t.Run("bool", func(t *testing.T) {
		t.Setenv(envEphemeral, "maybe")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
