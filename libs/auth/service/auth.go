package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned for malformed tokens, bad signatures and unexpected algorithms
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token lifetime has elapsed
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the identity carried by a bearer token
type Claims struct {
	UserID   int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// tokenClaims nests the identity under "user" next to the registered claims
type tokenClaims struct {
	User Claims `json:"user"`
	jwt.RegisteredClaims
}

// TokenGenerator handles JWT token generation and validation
//
// Tokens are stateless and cannot be revoked before expiry. Rotating the secret
// invalidates every outstanding token.
type TokenGenerator struct {
	secret      []byte
	tokenExpiry time.Duration
	now         func() time.Time
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, tokenExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:      []byte(secret),
		tokenExpiry: tokenExpiry,
		now:         time.Now,
	}
}

// WithClock replaces the time source used for issuance and expiry checks
func (tg *TokenGenerator) WithClock(now func() time.Time) *TokenGenerator {
	tg.now = now
	return tg
}

// TokenExpiry returns the configured token lifetime
func (tg *TokenGenerator) TokenExpiry() time.Duration {
	return tg.tokenExpiry
}

// GenerateToken issues a token with the configured lifetime
func (tg *TokenGenerator) GenerateToken(claims Claims) (string, error) {
	return tg.Issue(claims, tg.tokenExpiry)
}

// Issue signs claims into an HS256 token that expires after ttl
func (tg *TokenGenerator) Issue(claims Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	issuedAt := tg.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		User: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	})

	tokenString, err := token.SignedString(tg.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks the signature and expiry of a token and returns its claims
func (tg *TokenGenerator) Verify(tokenString string) (*Claims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tg.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tg.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.User.Username == "" {
		return nil, fmt.Errorf("%w: user claim not found", ErrInvalidToken)
	}

	return &claims.User, nil
}
