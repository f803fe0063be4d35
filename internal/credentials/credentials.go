// Package credentials isolates how stored passwords are produced and checked
package credentials

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMismatch is returned when a password does not match the stored value
	ErrMismatch = errors.New("password mismatch")
	// ErrPasswordTooLong is returned by Bcrypt.Hash for passwords over MaxBcryptPasswordBytes
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)

// MaxBcryptPasswordBytes is the longest password bcrypt accepts
const MaxBcryptPasswordBytes = 72

// PasswordHasher produces the stored form of a password and checks candidates against it
type PasswordHasher interface {
	// Hash returns the value persisted in the users table
	Hash(password string) (string, error)
	// Verify returns ErrMismatch when password does not match stored
	Verify(stored, password string) error
}

// New returns the hasher for the given scheme name ("plain" or "bcrypt")
func New(scheme string) (PasswordHasher, error) {
	switch scheme {
	case "", "plain":
		return Plain{}, nil
	case "bcrypt":
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

// VerifyPassword reports whether password matches the stored value under hasher
func VerifyPassword(hasher PasswordHasher, stored, password string) bool {
	return hasher.Verify(stored, password) == nil
}

// Plain stores passwords verbatim. Existing user rows created before hashing was
// configurable keep working with it.
type Plain struct{}

// Hash returns the password unchanged
func (Plain) Hash(password string) (string, error) {
	return password, nil
}

// Verify compares in constant time
func (Plain) Verify(stored, password string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrMismatch
	}
	return nil
}

// Bcrypt stores bcrypt hashes
type Bcrypt struct {
	Cost int
}

// Hash returns the bcrypt hash of password
func (b Bcrypt) Hash(password string) (string, error) {
	if len(password) > MaxBcryptPasswordBytes {
		return "", ErrPasswordTooLong
	}
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify checks password against a bcrypt hash
func (Bcrypt) Verify(stored, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}
