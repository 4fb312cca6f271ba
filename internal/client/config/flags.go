package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/snapfeed/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only the flags handled here are kept from os.Args (see flagx.FilterArgsBool),
// so -c / -config do not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgsBool(os.Args[1:], []string{"-a", "-d", "-t", "-l"}, []string{"-ephemeral"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "keep credentials in memory only")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only a given -t overrides, so sub-second timeouts from earlier sources
	// survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}
