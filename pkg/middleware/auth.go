package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/novamarket/pkg/auth"
	"github.com/shashiranjanraj/novamarket/pkg/response"
)

// claimsKey is the unexported context key for the authenticated claims.
type claimsKey struct{}

// ClaimsFromCtx returns the JWT claims stored by RequireAuth, or nil when
// the request is unauthenticated.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	if c, ok := ctx.Value(claimsKey{}).(*auth.Claims); ok {
		return c
	}
	return nil
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token claims in the request context for downstream handlers.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireStaff allows only staff accounts through. Must be mounted after
// RequireAuth.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromCtx(r.Context())
		if claims == nil {
			response.Unauthorized(w)
			return
		}
		if claims.Role != "staff" {
			response.Forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
