package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Feed(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Post(ctx context.Context) error
	Like(ctx context.Context, args []string) error
	Comment(ctx context.Context, args []string) error
	Favorite(ctx context.Context, args []string) error

	Profile(ctx context.Context, args []string) error
	Follow(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: signup, login, help, exit"
	helpSignedIn  = "Available commands: feed [page|more], show <n|id>, post, like <n|id>, comment <n|id> [text], fav <n|id>, " +
		"profile [user-id], follow <user-id>, search <query>, whoami, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the SnapFeed client.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands that need a session are refused when
// signed out, and signup/login are refused when signed in. The loop exits on
// EOF, when ctx is done, or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers alert or log
// on their own. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("snapfeed %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "signup", "login":
			if a.isLoggedIn() {
				printlnFn("Already logged in, use logout first")
				continue
			}
			if cmd == "signup" {
				_ = a.SignUp(ctx)
			} else {
				_ = a.Login(ctx)
			}
			continue
		}

		if !dispatchSignedIn(ctx, a, cmd, args) {
			printlnFn("Unknown command:", cmd)
		}
	}
}

// dispatchSignedIn runs cmd if it is a signed-in command and reports whether
// it was one.
func dispatchSignedIn(ctx context.Context, a execIface, cmd string, args []string) bool {
	handlers := map[string]func() error{
		"feed":    func() error { return a.Feed(ctx, args) },
		"show":    func() error { return a.Show(ctx, args) },
		"post":    func() error { return a.Post(ctx) },
		"like":    func() error { return a.Like(ctx, args) },
		"comment": func() error { return a.Comment(ctx, args) },
		"fav":     func() error { return a.Favorite(ctx, args) },
		"profile": func() error { return a.Profile(ctx, args) },
		"follow":  func() error { return a.Follow(ctx, args) },
		"search":  func() error { return a.Search(ctx, args) },
		"whoami":  func() error { return a.WhoAmI(ctx) },
		"logout":  func() error { return a.Logout(ctx) },
	}

	h, ok := handlers[cmd]
	if !ok {
		return false
	}
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return true
	}
	_ = h()
	return true
}
