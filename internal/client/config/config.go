package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the SnapFeed client.
//
// Units: RequestTimeout and SplashDuration are time.Duration values.
type Config struct {
	ServerBaseURL      string
	DatabasePath       string
	RequestTimeout     time.Duration
	SplashDuration     time.Duration
	LogLevel           string
	KeystorePassphrase string
	Ephemeral          bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080/api"
	c.DatabasePath = defaultDatabasePath()
	c.RequestTimeout = 10 * time.Second
	c.SplashDuration = 1500 * time.Millisecond
	c.LogLevel = "info"
	c.KeystorePassphrase = ""
	c.Ephemeral = false
}

func defaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "snapfeed", "client.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
