package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/hash"
)

// fakeRepo is an in-memory CredentialRepository for tests.
type fakeRepo struct {
	identities map[string]*Identity
	err        error
}

func (f *fakeRepo) FindByUsername(_ context.Context, username string) (*Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	identity, ok := f.identities[username]
	if !ok {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}
	return identity, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, repo CredentialRepository) (*Service, *TokenProvider) {
	t.Helper()
	hasher, err := hash.New(hash.Bcrypt)
	require.NoError(t, err)
	tokens := newTestProvider(15 * time.Minute)
	return NewService(repo, hasher, tokens, discardLogger()), tokens
}

func storedIdentity(t *testing.T, username, password string, active bool) *Identity {
	t.Helper()
	digest, err := hash.BcryptHasher{}.Hash(password)
	require.NoError(t, err)
	return &Identity{
		ID:             1,
		Username:       username,
		HashedPassword: digest,
		IsActive:       active,
	}
}

func TestService_Login_Success(t *testing.T) {
	repo := &fakeRepo{identities: map[string]*Identity{
		"alice": storedIdentity(t, "alice", "s3cret", true),
	}}
	svc, tokens := newTestService(t, repo)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Positive(t, resp.ExpiresIn)

	claims, err := tokens.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestService_Login_RejectionsAreIndistinguishable(t *testing.T) {
	repo := &fakeRepo{identities: map[string]*Identity{
		"alice":    storedIdentity(t, "alice", "s3cret", true),
		"inactive": storedIdentity(t, "inactive", "s3cret", false),
	}}
	svc, _ := newTestService(t, repo)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "unknown user", username: "bob", password: "anything"},
		{name: "wrong password", username: "alice", password: "wrong"},
		{name: "inactive account", username: "inactive", password: "s3cret"},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), LoginRequest{Username: tt.username, Password: tt.password})
			require.Error(t, err)

			appErr, ok := apperror.FromError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.AuthError, appErr.Type)
			messages = append(messages, appErr.Message)
		})
	}

	// All three rejections surface the same external message.
	for _, msg := range messages {
		assert.Equal(t, messages[0], msg)
	}
}

func TestService_Login_RepositoryFailureIsNotInvalidCredentials(t *testing.T) {
	repo := &fakeRepo{err: apperror.NewDatabaseError("connection refused", errors.New("dial tcp: refused"))}
	svc, _ := newTestService(t, repo)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "s3cret"})
	require.Error(t, err)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.DatabaseError, appErr.Type)
	assert.False(t, apperror.IsAuthError(err))
}

func TestService_Login_MalformedStoredDigest(t *testing.T) {
	repo := &fakeRepo{identities: map[string]*Identity{
		"alice": {ID: 1, Username: "alice", HashedPassword: "not a digest", IsActive: true},
	}}
	svc, _ := newTestService(t, repo)

	// A corrupted stored digest must reject the login, not crash it.
	_, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "s3cret"})
	require.Error(t, err)
	assert.True(t, apperror.IsAuthError(err))
}
