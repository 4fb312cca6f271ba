// Package validation holds the form rules applied before any request is sent
// to the backend. Every rule is independent: a failing field never hides the
// result of another.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	passwordMinLen = 8
	passwordMaxLen = 16

	// PasswordSpecials is the set a password must draw at least one symbol from.
	PasswordSpecials = "!@#$%^&*"
)

var (
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}$`)
	nameRe  = regexp.MustCompile(`^[A-Za-z]{3,16}$`)
)

var (
	ErrEmail    = errors.New("Please enter a valid email address")
	ErrPassword = errors.New("Password must be 8-16 characters and contain an uppercase letter, a lowercase letter, a digit and one of " + PasswordSpecials + ", with no repeated digits in a row")
	ErrName     = errors.New("Must be 3-16 letters with no digits, spaces or punctuation")
)

func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return ErrEmail
	}
	return nil
}

// ValidatePassword checks length, character classes and that no digit is
// immediately followed by the same digit.
func ValidatePassword(password string) error {
	if n := utf8.RuneCountInString(password); n < passwordMinLen || n > passwordMaxLen {
		return ErrPassword
	}

	var upper, lower, digit, special bool
	var prev rune
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			if c == prev {
				return ErrPassword
			}
			digit = true
		case strings.ContainsRune(PasswordSpecials, c):
			special = true
		}
		prev = c
	}

	if !upper || !lower || !digit || !special {
		return ErrPassword
	}
	return nil
}

// ValidateName is used for first name, last name and nickname alike.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return ErrName
	}
	return nil
}
