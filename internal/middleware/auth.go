package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bistroboss/bistro-gobackend/internal/auth"
)

type ctxKey int

const claimsKey ctxKey = iota

// TokenVerifier is the token-service contract the guard needs.
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// RoleLookup resolves the current role for an email. The guard calls it on
// every request so a role change takes effect on the very next request.
type RoleLookup interface {
	Role(ctx context.Context, email string) (auth.Role, error)
}

// ClaimsFrom returns the claims attached by Authenticate.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// Authenticate requires a bearer token and attaches the decoded claims to
// the request context. Absent and invalid tokens get distinct 401 messages.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeMessage(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
				return
			}
			raw := strings.TrimPrefix(header, "Bearer ")
			claims, err := verifier.Verify(raw)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole authorizes the authenticated user against a required
// capability via a fresh directory lookup. Must run after Authenticate.
func RequireRole(directory RoleLookup, required auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				writeMessage(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
				return
			}
			role, err := directory.Role(r.Context(), claims.Email)
			if err != nil || role != required {
				writeMessage(w, http.StatusForbidden, "forbidden access")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
