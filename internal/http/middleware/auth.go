// Package middleware carries the request plumbing the booking core stays out
// of: token parsing and the identity it puts on the request context. Token
// issuance belongs to the external auth service; this side only verifies.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is what the rest of the API knows about the caller.
type Identity struct {
	OwnerID uuid.UUID
	Admin   bool
}

type contextKey struct{}

// FromContext returns the caller identity placed by Authenticator.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// Authenticator verifies the Bearer token and stores the caller identity on
// the context. Requests without a valid token are rejected with 401.
func Authenticator(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := parseToken(r.Header.Get("Authorization"), secret)
			if err != nil {
				http.Error(w, "invalid or missing token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, id)))
		})
	}
}

// RequireAdmin guards admin-only routes; it must run after Authenticator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := FromContext(r.Context())
		if !ok || !id.Admin {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

func parseToken(header, secret string) (Identity, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return Identity{}, fmt.Errorf("missing bearer token")
	}

	var c claims

	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("parsing token: %w", err)
	}

	ownerID, err := uuid.Parse(c.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("parsing subject: %w", err)
	}

	return Identity{OwnerID: ownerID, Admin: c.Admin}, nil
}
