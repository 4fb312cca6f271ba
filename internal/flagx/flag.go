// Package flagx lets several components parse their own flags from the same
// command line without tripping over each other's unknown flags.
package flagx

import (
	"flag"
	"io"
	"os"
	"strconv"
	"strings"
)

// ConfigEnvVar names the environment variable consulted when no config file
// flag is given.
const ConfigEnvVar = "SNAPFEED_CONFIG"

// FilterArgs keeps only the flags named in allowed, together with their
// values. Both "-f value" and "-f=value" forms are recognised; a token that
// starts with "-" is never taken as a value. The result is never nil.
func FilterArgs(args []string, allowed []string) []string {
	return FilterArgsBool(args, allowed, nil)
}

// FilterArgsBool is FilterArgs for a flag set that also has boolean flags.
// A flag named in bools takes no separate value unless the next token is a
// boolean literal, in which case the pair is folded into "-f=value" as the
// flag package expects.
func FilterArgsBool(args []string, allowed, bools []string) []string {
	known := make(map[string]struct{}, len(allowed)+len(bools))
	for _, f := range allowed {
		known[f] = struct{}{}
	}
	isBool := make(map[string]struct{}, len(bools))
	for _, f := range bools {
		known[f] = struct{}{}
		isBool[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := known[name]; keep {
				out = append(out, arg)
			}
			continue
		}

		if _, keep := known[arg]; !keep {
			continue
		}
		if _, ok := isBool[arg]; ok {
			if i+1 < len(args) {
				if _, err := strconv.ParseBool(args[i+1]); err == nil {
					out = append(out, arg+"="+args[i+1])
					i++
					continue
				}
			}
			out = append(out, arg)
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigPath returns the JSON config file path given via -c or -config in
// args, falling back to $SNAPFEED_CONFIG. The last flag occurrence wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}
	return path
}
