package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/devjh/commboard/internal/domain"
	"github.com/devjh/commboard/internal/service"
)

type contextKey string

const (
	identityKey contextKey = "identity"
)

// Auth validates the Bearer access token and stores the caller's
// identity in the request context. Access tokens are stateless; no
// store lookup happens here.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("ERROR [middleware.Auth] missing authorization header")
				writeUnauthorized(w, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Printf("ERROR [middleware.Auth] invalid authorization header format")
				writeUnauthorized(w, "Invalid authorization header")
				return
			}

			claims, err := authService.VerifyAccessToken(parts[1])
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				writeUnauthorized(w, "Invalid token")
				return
			}

			identity := &domain.User{
				ID:    claims.UserID,
				Email: claims.Email,
				Role:  claims.Role,
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity returns the authenticated caller as reconstructed from
// the token claims: id, email and role only, no profile fields.
func GetIdentity(ctx context.Context) (*domain.User, bool) {
	identity, ok := ctx.Value(identityKey).(*domain.User)
	return identity, ok
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"` + message + `"}`))
}
