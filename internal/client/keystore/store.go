package keystore

import (
	"context"
	"errors"
)

// ErrCorrupted is returned when a stored secret cannot be decrypted, e.g.
// because the passphrase changed or the row was tampered with.
var ErrCorrupted = errors.New("credential cannot be decrypted")

// Secret is one stored credential.
type Secret struct {
	Account  string
	Password string
}

type Store interface {
	Get(ctx context.Context, service string) (*Secret, error)
	Set(ctx context.Context, account, secret, service string) error
	Reset(ctx context.Context, service string) error
}
