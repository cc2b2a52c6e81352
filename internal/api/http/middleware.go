package http

import (
	"context"
	"net/http"
	"strings"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "claims"

// AuthMiddleware validates the bearer token and stashes the claims in the
// request context. Tenant scoping rides on the company_id claim.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondError(w, security.ErrInvalidToken)
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimsFrom(r *http.Request) (*security.UserClaims, bool) {
	claims, ok := r.Context().Value(claimsKey).(*security.UserClaims)
	return claims, ok
}

// requireRole fetches claims and enforces role membership in one step.
func requireRole(r *http.Request, roles ...domain.UserRole) (*security.UserClaims, error) {
	claims, ok := claimsFrom(r)
	if !ok {
		return nil, security.ErrInvalidToken
	}
	if len(roles) == 0 {
		return claims, nil
	}
	for _, role := range roles {
		if claims.Role == role {
			return claims, nil
		}
	}
	return nil, domain.ErrForbidden
}
