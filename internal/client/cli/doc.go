// Package cli provides the interactive SnapFeed terminal client.
//
// It wires configuration, the local credential store, the backend API, the
// session manager and the post broadcaster behind a small REPL. Typical
// flow: show the splash banner, restore the stored session, then land on the
// feed when signed in or on the sign-in prompt otherwise.
//
// Key features:
//   - Sign up / Login / Logout
//   - Feed paging, post details, new posts with media
//   - Like, comment and favorite, applied optimistically
//   - Profiles, follow / unfollow, user search
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
