package users

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/auth"
	"github.com/user/todoserve-go/hash"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	users  map[int]*auth.Identity
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[int]*auth.Identity{}, nextID: 1}
}

func (f *fakeRepo) FindAll(_ context.Context) ([]auth.Identity, error) {
	list := []auth.Identity{}
	for _, u := range f.users {
		list = append(list, *u)
	}
	return list, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id int) (*auth.Identity, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}
	return u, nil
}

func (f *fakeRepo) FindByUsername(_ context.Context, username string) (*auth.Identity, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperror.NewNotFoundError("user not found", nil)
}

func (f *fakeRepo) Create(_ context.Context, user *auth.Identity) (*auth.Identity, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return nil, apperror.NewConflictError("already exists a user with the same username", nil)
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeRepo) Update(_ context.Context, user *auth.Identity) (*auth.Identity, error) {
	if _, ok := f.users[user.ID]; !ok {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return apperror.NewNotFoundError("user not found", nil)
	}
	delete(f.users, id)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()
	hasher, err := hash.New(hash.Bcrypt)
	require.NoError(t, err)
	repo := newFakeRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, hasher, logger), repo
}

func createRequest() CreateUserRequest {
	return CreateUserRequest{
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Doe",
		Email:     "Alice@Example.com",
		Password:  "s3cret",
	}
}

func TestService_Create(t *testing.T) {
	svc, repo := newTestService(t)

	res, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "User created!", res.Message)

	created, ok := res.Data.(*auth.Identity)
	require.True(t, ok)
	assert.Equal(t, 1, created.ID)
	assert.True(t, created.IsActive)
	// Email is normalized to lowercase.
	assert.Equal(t, "alice@example.com", created.Email)

	// The stored password is a digest of the plaintext, not the plaintext.
	stored := repo.users[1]
	assert.NotEqual(t, "s3cret", stored.HashedPassword)
	ok, err = hash.BcryptHasher{}.Check("s3cret", stored.HashedPassword)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestService_Create_DuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createRequest())
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))
}

func TestService_FindOne(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	res, err := svc.FindOne(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "User found!", res.Message)

	_, err = svc.FindOne(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Delete(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	res, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "User deleted!", res.Message)
	// Side-effect operations carry no payload.
	assert.Nil(t, res.Data)
	assert.Empty(t, repo.users)
}
