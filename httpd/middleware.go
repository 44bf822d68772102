package httpd

import (
	"context"
	"net/http"

	"github.com/eshoplabs/auth"
)

type contextKey struct{ name string }

var claimsKey = &contextKey{"auth-claims"}

// claimsFrom returns the authenticated identity attached by requireAuth.
func claimsFrom(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(auth.Claims)
	return claims, ok
}

// requireAuth verifies the access-token cookie and attaches the caller
// identity to the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.engine.Authenticate(cookieValue(r, accessCookie))
		if err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// requireRole gates a subtree to one account role.
func (s *Server) requireRole(role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsFrom(r.Context())
			if !ok || claims.Role != role {
				writeError(w, r, s.logger, auth.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
