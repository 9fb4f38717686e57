package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/hash"
)

// invalidCredentialsMsg is the single message surfaced for every credential
// rejection. Unknown usernames, inactive accounts and wrong passwords are
// indistinguishable from outside so that callers cannot enumerate accounts.
const invalidCredentialsMsg = "invalid credentials"

// CredentialRepository is the only capability the auth core requires from
// storage: a read-only lookup of the identity record by username. It must be
// safe for concurrent use.
type CredentialRepository interface {
	FindByUsername(ctx context.Context, username string) (*Identity, error)
}

// Service validates credentials and issues tokens. It orchestrates the
// repository port, the crypto provider and the token provider; none of them
// know about each other.
type Service struct {
	repo   CredentialRepository
	hasher hash.Hasher
	tokens *TokenProvider
	logger *slog.Logger
}

// NewService constructs an auth Service with its collaborators injected.
func NewService(repo CredentialRepository, hasher hash.Hasher, tokens *TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Login turns a (username, password) pair into an issued token or a
// rejection. The rejection cases are logged with distinct detail internally
// but share one external error; repository faults surface as server-side
// failures and are never reported as bad credentials.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	identity, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			s.logger.Warn("login rejected: unknown username", "username", req.Username)
			return nil, apperror.NewAuthError(invalidCredentialsMsg, nil)
		}
		s.logger.Error("login failed: user lookup error", "error", err)
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}

	if !identity.IsActive {
		// Inactive accounts must not be distinguishable from absent ones.
		s.logger.Warn("login rejected: inactive account", "username", req.Username)
		return nil, apperror.NewAuthError(invalidCredentialsMsg, nil)
	}

	ok, err := s.hasher.Check(req.Password, identity.HashedPassword)
	if err != nil {
		s.logger.Error("login failed: password verification error", "username", req.Username)
		return nil, apperror.NewInternalError("failed to verify credentials", err)
	}
	if !ok {
		s.logger.Warn("login rejected: wrong password", "username", req.Username)
		return nil, apperror.NewAuthError(invalidCredentialsMsg, nil)
	}

	token, expiresAt, err := s.tokens.Issue(identity)
	if err != nil {
		s.logger.Error("login failed: token issuance error", "username", req.Username)
		return nil, apperror.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("login succeeded", "username", req.Username, "user_id", identity.ID)

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
	}, nil
}
