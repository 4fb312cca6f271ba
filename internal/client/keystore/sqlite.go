package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/snapfeed/internal/common"
	"github.com/dmitrijs2005/snapfeed/internal/cryptox"
	"github.com/dmitrijs2005/snapfeed/internal/dbx"
)

const (
	saltMetaKey = "salt"
	saltSize    = 16
)

type SQLiteStore struct {
	db  *sql.DB
	key []byte
	now func() time.Time
}

// NewSQLiteStore derives the sealing key for db from passphrase. The salt is
// read from keystore_meta, or generated and saved on first use.
func NewSQLiteStore(ctx context.Context, db *sql.DB, passphrase []byte) (*SQLiteStore, error) {
	salt, err := loadOrCreateSalt(ctx, db)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, key: cryptox.DeriveKey(passphrase, salt), now: time.Now}, nil
}

func loadOrCreateSalt(ctx context.Context, db *sql.DB) ([]byte, error) {
	var salt []byte

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		err := tx.QueryRowContext(ctx, `SELECT value FROM keystore_meta WHERE key = ?`, saltMetaKey).Scan(&salt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		salt = common.GenerateRandByteArray(saltSize)
		_, err = tx.ExecContext(ctx, `INSERT INTO keystore_meta (key, value) VALUES (?, ?)`, saltMetaKey, salt)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load keystore salt: %w", err)
	}
	return salt, nil
}

func (s *SQLiteStore) Get(ctx context.Context, service string) (*Secret, error) {
	var (
		account       string
		sealed, nonce []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT account, secret, nonce FROM credentials WHERE service = ?`, service,
	).Scan(&account, &sealed, &nonce)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential[%s]: %w", service, err)
	}

	plain, err := cryptox.Open(s.key, sealed, nonce, []byte(service))
	if err != nil {
		return nil, fmt.Errorf("failed to open credential[%s]: %w", service, ErrCorrupted)
	}
	defer common.WipeByteArray(plain)

	return &Secret{Account: account, Password: string(plain)}, nil
}

func (s *SQLiteStore) Set(ctx context.Context, account, secret, service string) error {
	sealed, nonce, err := cryptox.Seal(s.key, []byte(secret), []byte(service))
	if err != nil {
		return fmt.Errorf("failed to seal credential[%s]: %w", service, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO credentials (service, account, secret, nonce, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(service) DO UPDATE SET
			account = excluded.account,
			secret = excluded.secret,
			nonce = excluded.nonce,
			updated_at = excluded.updated_at
	`, service, account, sealed, nonce, s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to set credential[%s]: %w", service, err)
	}
	return nil
}

func (s *SQLiteStore) Reset(ctx context.Context, service string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE service = ?`, service); err != nil {
		return fmt.Errorf("failed to reset credential[%s]: %w", service, err)
	}
	return nil
}
