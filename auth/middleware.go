package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/result"
)

// unauthenticatedMsg is the single message returned for every guard
// rejection. A missing header, a malformed header, a bad signature and an
// expired token all look identical from outside; internal logs keep the
// distinction.
const unauthenticatedMsg = "invalid or missing authentication token"

// Guard is the per-request decision point for protected routes.
type Guard struct {
	tokens *TokenProvider
	logger *slog.Logger
}

// NewGuard constructs a Guard around the given token provider.
func NewGuard(tokens *TokenProvider, logger *slog.Logger) *Guard {
	return &Guard{tokens: tokens, logger: logger}
}

// Authorize inspects a raw Authorization header value and either returns the
// verified claims or an AuthError. It is the single decision function the
// routing layer consults before running a protected handler.
func (g *Guard) Authorize(rawHeader string) (*Claims, error) {
	if rawHeader == "" {
		g.logger.Debug("request rejected: missing authorization header")
		return nil, apperror.NewAuthError(unauthenticatedMsg, nil)
	}

	// The header must be exactly "Bearer <token>".
	parts := strings.SplitN(rawHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		g.logger.Debug("request rejected: malformed authorization header")
		return nil, apperror.NewAuthError(unauthenticatedMsg, nil)
	}

	claims, err := g.tokens.Verify(parts[1])
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenExpired):
			g.logger.Debug("request rejected: expired token")
		case errors.Is(err, ErrTokenInvalidSignature):
			g.logger.Warn("request rejected: invalid token signature")
		default:
			g.logger.Debug("request rejected: malformed token")
		}
		return nil, apperror.NewAuthError(unauthenticatedMsg, err)
	}

	return claims, nil
}

// RequireAuth is the middleware form of Authorize: it rejects the request
// before the handler runs, or attaches the verified claims to the request
// context for the duration of the request.
func (g *Guard) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := g.Authorize(r.Header.Get("Authorization"))
		if err != nil {
			result.WriteError(w, r, err)
			return
		}

		ctx := NewContextWithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
