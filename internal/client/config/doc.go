// Package config loads runtime configuration for the SnapFeed terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: a .env file in the working directory (if present) and
//     SNAPFEED_* variables (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via -c / -config or
//     $SNAPFEED_CONFIG.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     backend base URL, e.g. http://127.0.0.1:8080/api
//	-d string     path of the local SQLite database
//	-t int        request timeout (seconds)
//	-l string     log level: debug, info, warn, error
//	-ephemeral    keep credentials in memory only
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080/api",
//	  "database_path": "/home/me/.config/snapfeed/client.db",
//	  "request_timeout": "10s",
//	  "splash_duration": "1500ms",
//	  "log_level": "info",
//	  "keystore_passphrase": "change me",
//	  "ephemeral": false
//	}
//
// The keystore passphrase has no flag so that it never shows up in a process
// listing.
package config
