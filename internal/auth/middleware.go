package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"gather/internal/api"
	"gather/internal/apperror"
	"gather/pkg/jwt"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the session claims the middleware attached.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*jwt.Claims)
	return claims, ok
}

// Middleware gates API routes on a valid session token, taken from the
// token cookie or the Authorization bearer header.
func Middleware(tokens *jwt.JWT, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				api.WriteError(w, logger, apperror.Unauthorized("Unauthorized"))
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				logger.Warn("token rejected", zap.Error(err))
				api.WriteError(w, logger, apperror.Forbidden("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(tokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	const bearer = "Bearer "
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, bearer) {
		return h[len(bearer):]
	}
	return ""
}
