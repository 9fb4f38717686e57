// Package users encapsulates user management: the identity records behind
// authentication plus their CRUD operations. The repository here is the
// persistence adapter that satisfies the auth core's credential lookup port.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/auth"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// dbtx is the subset of pgxpool.Pool the repository needs. Taking the
// interface instead of the concrete pool lets tests substitute a mock.
type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository provides access to stored user records.
type Repository interface {
	auth.CredentialRepository
	FindAll(ctx context.Context) ([]auth.Identity, error)
	FindByID(ctx context.Context, id int) (*auth.Identity, error)
	Create(ctx context.Context, user *auth.Identity) (*auth.Identity, error)
	Update(ctx context.Context, user *auth.Identity) (*auth.Identity, error)
	Delete(ctx context.Context, id int) error
}

// PostgresRepository implements Repository over PostgreSQL.
type PostgresRepository struct {
	db dbtx
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db dbtx) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

const userColumns = `id, username, first_name, last_name, email, password, is_active`

// FindAll returns every stored user.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]auth.Identity, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}
	defer rows.Close()

	users := []auth.Identity{}
	for rows.Next() {
		var u auth.Identity
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.HashedPassword, &u.IsActive); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan user row", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read user rows", err)
	}
	return users, nil
}

// FindByID returns a single user by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id int) (*auth.Identity, error) {
	var u auth.Identity
	err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.HashedPassword, &u.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return &u, nil
}

// FindByUsername returns a single user by username. This is the lookup the
// auth core performs during login; usernames are matched case-sensitively.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*auth.Identity, error) {
	var u auth.Identity
	err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.HashedPassword, &u.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by username", err)
	}
	return &u, nil
}

// Create inserts a new user record. The password field must already be
// hashed by the caller. A duplicate username surfaces as a ConflictError.
func (r *PostgresRepository) Create(ctx context.Context, user *auth.Identity) (*auth.Identity, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, first_name, last_name, email, password, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		user.Username, user.FirstName, user.LastName, user.Email, user.HashedPassword, user.IsActive,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("already exists a user with the same username", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return user, nil
}

// Update modifies an existing user record. The password is not updatable
// through this path.
func (r *PostgresRepository) Update(ctx context.Context, user *auth.Identity) (*auth.Identity, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET username = $1, first_name = $2, last_name = $3, email = $4
		 WHERE id = $5`,
		user.Username, user.FirstName, user.LastName, user.Email, user.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("already exists a user with the same username", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", user.ID), nil)
	}
	return user, nil
}

// Delete removes a user record by identifier.
func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", id), nil)
	}
	return nil
}
