package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/snapfeed/internal/flagx"
	"github.com/dmitrijs2005/snapfeed/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Fields left
// out of the file keep the value from earlier sources.
type JsonConfig struct {
	ServerBaseURL      string         `json:"server_base_url"`
	DatabasePath       string         `json:"database_path"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	SplashDuration     timex.Duration `json:"splash_duration"`
	LogLevel           string         `json:"log_level"`
	KeystorePassphrase string         `json:"keystore_passphrase"`
	Ephemeral          *bool          `json:"ephemeral"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The path comes from -c / -config, or $SNAPFEED_CONFIG. If neither is set
// nothing is loaded. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SplashDuration.Duration != 0 {
		cfg.SplashDuration = jc.SplashDuration.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.KeystorePassphrase != "" {
		cfg.KeystorePassphrase = jc.KeystorePassphrase
	}
	if jc.Ephemeral != nil {
		cfg.Ephemeral = *jc.Ephemeral
	}
}
