// Package tokeninfo reads the claims of a session token for display and
// diagnostics. Signatures are not verified; the backend remains the only
// authority on whether a token is valid.
package tokeninfo

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned for opaque tokens.
var ErrNotJWT = errors.New("token is not a JWT")

type Info struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is not after now.
// Tokens without an expiry never expire.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !i.ExpiresAt.After(now)
}

func Inspect(token string) (Info, error) {
	if strings.Count(token, ".") != 2 {
		return Info{}, ErrNotJWT
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Info{}, errors.Join(ErrNotJWT, err)
	}

	info := Info{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
