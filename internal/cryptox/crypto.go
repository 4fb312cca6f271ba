// Package cryptox seals credential store secrets at rest.
//
// Keys are derived from a passphrase and a random salt with argon2id; values
// are sealed with AES-256-GCM using a fresh random nonce per value.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
)

// KeySize is the length of derived keys (AES-256).
const KeySize = 32

var ErrInvalidKey = errors.New("key must be 32 bytes")

// DeriveKey stretches passphrase into a KeySize key bound to salt.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext with key. additional is authenticated but not
// encrypted; the store passes the service name so rows cannot be swapped.
func Seal(key, plaintext, additional []byte) (ciphertext, nonce []byte, err error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	return aead.Seal(nil, nonce, plaintext, additional), nonce, nil
}

// Open reverses Seal. It fails if the key, nonce, additional data or
// ciphertext differ from what was sealed.
func Open(key, ciphertext, nonce, additional []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, nonce, ciphertext, additional)
}
