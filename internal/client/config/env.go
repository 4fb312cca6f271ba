package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded before SNAPFEED_* variables are read. Variables already
// set in the process environment win over the file.
var envFile = ".env"

const (
	envServerBaseURL      = "SNAPFEED_SERVER_URL"
	envDatabasePath       = "SNAPFEED_DB_PATH"
	envRequestTimeout     = "SNAPFEED_REQUEST_TIMEOUT"
	envSplashDuration     = "SNAPFEED_SPLASH_DURATION"
	envLogLevel           = "SNAPFEED_LOG_LEVEL"
	envKeystorePassphrase = "SNAPFEED_KEYSTORE_PASSPHRASE"
	envEphemeral          = "SNAPFEED_EPHEMERAL"
)

// parseEnv overlays Config with SNAPFEED_* variables. Durations use Go
// syntax ("10s"). Panics on a malformed .env file or value.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(envServerBaseURL); ok {
		cfg.ServerBaseURL = v
	}
	if v, ok := os.LookupEnv(envDatabasePath); ok {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv(envRequestTimeout); ok {
		cfg.RequestTimeout = mustDuration(envRequestTimeout, v)
	}
	if v, ok := os.LookupEnv(envSplashDuration); ok {
		cfg.SplashDuration = mustDuration(envSplashDuration, v)
	}
	if v, ok := os.LookupEnv(envLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(envKeystorePassphrase); ok {
		cfg.KeystorePassphrase = v
	}
	if v, ok := os.LookupEnv(envEphemeral); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(envEphemeral + ": " + err.Error())
		}
		cfg.Ephemeral = b
	}
}

func mustDuration(name, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(name + ": " + err.Error())
	}
	return d
}
