// Package otp holds outstanding one-time password challenges keyed by email
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	codeMin = 100000
	codeMax = 999999 // exclusive
)

// Store keeps at most one outstanding challenge per email
type Store interface {
	// Put stores code for email, replacing any previous challenge
	Put(ctx context.Context, email, code string) error
	// Consume deletes the challenge and returns true only if it matches code.
	// Concurrent calls with the same matching code succeed exactly once.
	Consume(ctx context.Context, email, code string) (bool, error)
}

// GenerateCode returns a six digit code drawn uniformly from [100000, 999999)
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+codeMin), nil
}

// NormalizeEmail returns the key under which a challenge for email is stored
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
