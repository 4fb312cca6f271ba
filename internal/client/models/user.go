// Package models defines the client-side data shapes exchanged with the
// SnapFeed backend and held in memory by the session and post caches.
package models

import (
	"encoding/json"
	"fmt"
	"maps"
)

// User is the backend's user object. Only email is relied upon; every other
// field is carried through untouched, which is why it stays a JSON object
// rather than a struct.
type User map[string]any

// NewUser returns a user holding just an email, used when the backend omits
// the user object from a sign-in response.
func NewUser(email string) User {
	return User{"email": email}
}

func (u User) str(key string) string {
	if u == nil {
		return ""
	}
	switch v := u[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

func (u User) Email() string { return u.str("email") }
func (u User) Name() string  { return u.str("name") }

// ID returns the backend identifier, accepting both "id" and "_id".
func (u User) ID() string {
	if id := u.str("id"); id != "" {
		return id
	}
	return u.str("_id")
}

// Display is the best short label for the user.
func (u User) Display() string {
	if nick := u.str("nickname"); nick != "" {
		return nick
	}
	if name := u.Name(); name != "" {
		return name
	}
	return u.Email()
}

// Clone copies the top-level fields. Nested values are shared.
func (u User) Clone() User {
	if u == nil {
		return nil
	}
	return maps.Clone(u)
}

// ParseUser decodes a serialized user. Anything but a JSON object is an error.
func ParseUser(data []byte) (User, error) {
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("parse user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("parse user: not an object")
	}
	return u, nil
}

// Credentials is what the sign-in form collects.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpForm is what the registration form collects.
type SignUpForm struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
