// Package common defines shared constants and sentinel errors used across
// the client layers of SnapFeed. Callers should use errors.Is to match these
// values.
package common

import "errors"

// ErrMissingToken means the backend accepted a sign-in but sent no token.
var ErrMissingToken = errors.New("no token in response")
