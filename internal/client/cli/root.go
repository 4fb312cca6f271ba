package cli

import (
	"context"
	"fmt"
	"io"
	"time"
)

const banner = `
  ___               ___            _
 / __|_ _  __ _ _ _| __|__ ___ __| |
 \__ \ ' \/ _' | '_ \ _/ -_) -_) _' |
 |___/_||_\__,_| .__/_|\___\___\__,_|
               |_|
`

// showSplash prints the banner and holds it for d, or until ctx is done.
func showSplash(ctx context.Context, w io.Writer, d time.Duration) {
	fmt.Fprint(w, banner, "\n")
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// start runs the startup sequence and reports whether the REPL should run.
func (a *App) start(ctx context.Context) bool {
	showSplash(ctx, a.out, a.config.SplashDuration)
	if ctx.Err() != nil {
		return false
	}

	go a.session.Bootstrap(ctx)
	select {
	case <-a.session.Ready():
	case <-ctx.Done():
		return false
	}

	a.route(ctx)
	return true
}

// route lands a signed-in user on the feed and everyone else on sign in.
func (a *App) route(ctx context.Context) {
	if a.isLoggedIn() {
		u, _ := a.me()
		a.printf("Welcome back, %s! (type 'help' for commands)\n", u.Display())
		_ = a.Feed(ctx, nil)
		return
	}
	a.printf("Welcome to SnapFeed! Type 'login' or 'signup' to get started, 'help' for commands.\n")
}

func (a *App) getStatus() string {
	s := a.session.Snapshot()
	if !s.IsAuthenticated {
		return ""
	}
	return fmt.Sprintf("(%s)", s.User.Display())
}
