package middleware

import (
	"net/http"
)

// RoleAdmin is the role allowed through RequireAdmin
const RoleAdmin = "admin"

// RequireRole rejects callers whose token role differs from role.
// It must run after RequireAuthenticated.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetIdentity(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, `{"error":"No token provided"}`)
				return
			}

			if claims.Role != role {
				writeError(w, http.StatusForbidden, `{"error":"Admin access required"}`)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects callers without the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(RoleAdmin)(next)
}
