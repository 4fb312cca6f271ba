package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// consoleAlerter prints alerts as a framed block so they stand out from
// regular command output.
type consoleAlerter struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsoleAlerter(w io.Writer) *consoleAlerter {
	return &consoleAlerter{w: w}
}

func (c *consoleAlerter) Alert(title, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.w, "\n!! %s\n", title)
	for _, line := range strings.Split(message, "\n") {
		fmt.Fprintf(c.w, "!! %s\n", line)
	}
	fmt.Fprintln(c.w)
}
