package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lorrc/customer-service-backend/internal/auth"
	"github.com/lorrc/customer-service-backend/internal/infrastructure/logging"
)

// contextKey keeps middleware context values from colliding with other
// packages' keys.
type contextKey string

// UserClaimsKey is where JWTMiddleware stores the verified claims.
const UserClaimsKey contextKey = "userClaims"

// JWTMiddleware rejects requests that do not carry a valid bearer token.
// Verified claims go into the request context; the user ID also goes into
// the logging context so later log lines identify the caller.
func JWTMiddleware(tm *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeUnauthorized(w, "Authorization header must be Bearer {token}")
				return
			}

			claims, err := tm.ValidateToken(token)
			if err != nil {
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			ctx = logging.WithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `","code":"UNAUTHORIZED"}`))
}

// GetClaims returns the authenticated caller's claims, as stored by
// JWTMiddleware.
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*auth.Claims)
	return claims, ok
}
