package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-todo-api/internal/model"
)

type tokenAuthorizer interface {
	Authorize(token string) (model.Identity, error)
}

type contextKey string

const identityContextKey contextKey = "identity"

type AuthMiddleware struct {
	authorizer tokenAuthorizer
}

func NewAuthMiddleware(authorizer tokenAuthorizer) *AuthMiddleware {
	return &AuthMiddleware{authorizer: authorizer}
}

// RequireAuth rejects the request unless it carries a valid bearer token.
// Every rejection looks the same regardless of what was wrong with the token.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
			return
		}

		identity, err := m.authorizer.Authorize(strings.TrimSpace(header[7:]))
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
			return
		}

		annotateIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func (m *AuthMiddleware) RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	roleSet := map[string]struct{}{}
	for _, role := range allowedRoles {
		roleSet[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
				return
			}

			if _, exists := roleSet[strings.ToLower(identity.Role)]; !exists {
				writeAuthError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(model.Identity)
	return identity, ok
}

func writeAuthError(w http.ResponseWriter, status int, code string, message string) {
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeJSONError(w, status, code, message)
}
