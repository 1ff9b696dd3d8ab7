package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/auth"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware creates an authentication middleware. The authenticated
// user is stored with domain.ContextWithUser and becomes the default actor
// of mutations.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeFailure(w, http.StatusUnauthorized, "unauthorized", "missing or malformed bearer token")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				detail := domain.ErrInvalidToken.Error()
				if errors.Is(err, domain.ErrExpiredToken) {
					detail = domain.ErrExpiredToken.Error()
				}
				writeFailure(w, http.StatusUnauthorized, "unauthorized", detail)
				return
			}

			user := claims.User()
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("user_id", user.ID)
			})

			next.ServeHTTP(w, r.WithContext(domain.ContextWithUser(r.Context(), user)))
		})
	}
}

// RequireRole rejects requests whose user role does not satisfy allowed,
// e.g. RequireRole(domain.Role.CanPost).
func RequireRole(allowed func(domain.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := domain.UserFromContext(r.Context())
			if !ok {
				writeFailure(w, http.StatusUnauthorized, "unauthorized", domain.ErrUnauthorized.Error())
				return
			}

			if !allowed(user.Role) {
				writeFailure(w, http.StatusForbidden, "forbidden", domain.ErrInsufficientRole.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuth extracts the user when a valid token is present and
// continues anonymously otherwise.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if claims, err := verifier.Verify(token); err == nil {
					r = r.WithContext(domain.ContextWithUser(r.Context(), claims.User()))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
