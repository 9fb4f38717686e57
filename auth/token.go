package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/user/todoserve-go/config"
)

// Verification failures. Externally these all collapse into a single
// unauthenticated response; they are distinguished here for internal
// diagnostics only.
var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token is expired")
)

// Claims is the payload embedded in issued tokens: the subject identity
// reference plus the standard issued-at/expiry timestamps.
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenProvider signs and verifies bearer tokens. The signing secret and
// token lifetime are injected at construction and never change afterwards,
// so a single provider is safe for concurrent use.
type TokenProvider struct {
	secret   []byte
	lifetime time.Duration
	issuer   string
}

// NewTokenProvider constructs a TokenProvider from the auth configuration.
func NewTokenProvider(cfg *config.AuthConfig) *TokenProvider {
	return &TokenProvider{
		secret:   []byte(cfg.JWTSecret),
		lifetime: cfg.TokenDuration,
		issuer:   cfg.Issuer,
	}
}

// Issue creates a signed token for the identity, stamping issued-at = now
// and expiry = now + configured lifetime. It returns the token string and
// its expiry time.
func (p *TokenProvider) Issue(identity *Identity) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(p.lifetime)

	claims := &Claims{
		UserID:   identity.ID,
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    p.issuer,
			Subject:   strconv.Itoa(identity.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token string. The signature is checked
// before any claim is trusted; expiry is checked after the signature.
// Failures map to ErrTokenMalformed, ErrTokenInvalidSignature or
// ErrTokenExpired.
func (p *TokenProvider) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
	}

	if !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
