package users

import (
	"context"
	"log/slog"
	"strings"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/auth"
	"github.com/user/todoserve-go/hash"
	"github.com/user/todoserve-go/result"
)

// Service implements the user CRUD operations, wrapping every outcome in the
// result envelope consumed by the HTTP boundary.
type Service struct {
	repo   Repository
	hasher hash.Hasher
	logger *slog.Logger
}

// NewService constructs a user Service.
func NewService(repo Repository, hasher hash.Hasher, logger *slog.Logger) *Service {
	return &Service{repo: repo, hasher: hasher, logger: logger}
}

// FindAll returns every user.
func (s *Service) FindAll(ctx context.Context) (result.Result, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return result.Result{}, err
	}
	return result.OK("Users found!", list), nil
}

// FindOne returns a single user by id.
func (s *Service) FindOne(ctx context.Context, id int) (result.Result, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return result.Result{}, err
	}
	return result.OK("User found!", user), nil
}

// Create registers a new user. The plaintext password is hashed before it
// touches the repository and discarded afterwards; it never appears in logs
// or in the returned payload.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (result.Result, error) {
	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return result.Result{}, apperror.NewInternalError("failed to hash password", err)
	}

	user := &auth.Identity{
		Username:       req.Username,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          strings.ToLower(req.Email),
		HashedPassword: digest,
		IsActive:       true,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return result.Result{}, err
	}

	s.logger.Info("new user has been inserted", "user_id", created.ID)
	return result.OK("User created!", created), nil
}

// Update modifies an existing user.
func (s *Service) Update(ctx context.Context, id int, req UpdateUserRequest) (result.Result, error) {
	user := &auth.Identity{
		ID:        id,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.ToLower(req.Email),
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return result.Result{}, err
	}

	s.logger.Info("user has been updated", "user_id", id)
	return result.OK("User updated!", updated), nil
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, id int) (result.Result, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return result.Result{}, err
	}

	s.logger.Info("user has been deleted", "user_id", id)
	return result.OK("User deleted!", nil), nil
}
