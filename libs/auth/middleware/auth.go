package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/otpauth/backend/libs/auth/service"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenVerifier is the interface that wraps the Verify method of a token service.
//
// Verify checks the signature and expiry of a token and returns its claims.
// Expired tokens are reported with service.ErrExpiredToken.
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

// RequireAuthenticated validates the bearer token and attaches the caller identity to the request context
func RequireAuthenticated(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)

			// If no token found, return 401
			if token == "" {
				writeError(w, http.StatusUnauthorized, `{"error":"No token provided"}`)
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				if errors.Is(err, service.ErrExpiredToken) {
					writeError(w, http.StatusForbidden, `{"error":"Token expired"}`)
					return
				}
				writeError(w, http.StatusForbidden, `{"error":"Failed to authenticate token"}`)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the caller identity from context
func GetIdentity(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(identityKey).(*service.Claims)
	return claims, ok && claims != nil
}

// GetUserID retrieves the caller user ID from context
func GetUserID(ctx context.Context) (int, bool) {
	claims, ok := GetIdentity(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

// WithIdentity returns a copy of ctx carrying the given identity
func WithIdentity(ctx context.Context, claims *service.Claims) context.Context {
	return context.WithValue(ctx, identityKey, claims)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func writeError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
