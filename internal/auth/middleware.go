package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hbnb-stays/hbnb/internal/platform/httpx"
	"github.com/hbnb-stays/hbnb/internal/shared"
)

type tokenContextKey struct{}

// contextWithToken stores the full verified token so logout can revoke it.
func contextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext extracts the verified token from context.
func TokenFromContext(ctx context.Context) (*Token, bool) {
	token, ok := ctx.Value(tokenContextKey{}).(*Token)
	return token, ok
}

// Middleware guards routes with bearer-token authentication.
type Middleware struct {
	logger  *slog.Logger
	tokens  *TokenManager
	revoked *RevocationStore
}

// NewMiddleware constructs the auth middleware.
func NewMiddleware(logger *slog.Logger, tokens *TokenManager, revoked *RevocationStore) *Middleware {
	return &Middleware{logger: logger, tokens: tokens, revoked: revoked}
}

// RequireAuth verifies the Authorization bearer token and attaches the
// immutable caller claims to the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			httpx.Error(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		token, err := m.tokens.Verify(raw)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		if m.revoked != nil {
			revoked, err := m.revoked.IsRevoked(r.Context(), token.ID)
			if err != nil {
				m.logger.Error("revocation check failed", slog.Any("error", err))
				httpx.Error(w, http.StatusInternalServerError, "internal error")
				return
			}
			if revoked {
				httpx.Error(w, http.StatusUnauthorized, "token revoked")
				return
			}
		}
		ctx := shared.ContextWithClaims(r.Context(), token.Claims)
		ctx = contextWithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin allows only callers whose verified claims carry the admin
// flag. It must be mounted after RequireAuth.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := shared.ClaimsFromContext(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if !claims.IsAdmin {
			httpx.Error(w, http.StatusForbidden, "Admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
