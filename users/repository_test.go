package users

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/auth"
)

var userCols = []string{"id", "username", "first_name", "last_name", "email", "password", "is_active"}

func TestPostgresRepository_FindByUsername(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      *auth.Identity
		checkErr  func(t *testing.T, err error)
	}{
		{
			name:     "found",
			username: "alice",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(userCols).
					AddRow(1, "alice", "Alice", "Doe", "alice@example.com", "digest", true)
				mock.ExpectQuery(`SELECT .+ FROM users WHERE username`).
					WithArgs("alice").
					WillReturnRows(rows)
			},
			want: &auth.Identity{
				ID: 1, Username: "alice", FirstName: "Alice", LastName: "Doe",
				Email: "alice@example.com", HashedPassword: "digest", IsActive: true,
			},
		},
		{
			name:     "not found",
			username: "bob",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .+ FROM users WHERE username`).
					WithArgs("bob").
					WillReturnError(pgx.ErrNoRows)
			},
			checkErr: func(t *testing.T, err error) {
				assert.True(t, apperror.IsNotFound(err))
			},
		},
		{
			name:     "database error",
			username: "alice",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .+ FROM users WHERE username`).
					WithArgs("alice").
					WillReturnError(errors.New("connection refused"))
			},
			checkErr: func(t *testing.T, err error) {
				assert.True(t, apperror.IsDatabaseError(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewPostgresRepository(mock)
			got, err := repo.FindByUsername(context.Background(), tt.username)

			if tt.checkErr != nil {
				require.Error(t, err)
				tt.checkErr(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_Create(t *testing.T) {
	t.Run("assigns generated id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("alice", "Alice", "Doe", "alice@example.com", "digest", true).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(7))

		repo := NewPostgresRepository(mock)
		created, err := repo.Create(context.Background(), &auth.Identity{
			Username: "alice", FirstName: "Alice", LastName: "Doe",
			Email: "alice@example.com", HashedPassword: "digest", IsActive: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 7, created.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username maps to conflict", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("alice", "Alice", "Doe", "alice@example.com", "digest", true).
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_username_idx"})

		repo := NewPostgresRepository(mock)
		_, err = repo.Create(context.Background(), &auth.Identity{
			Username: "alice", FirstName: "Alice", LastName: "Doe",
			Email: "alice@example.com", HashedPassword: "digest", IsActive: true,
		})
		require.Error(t, err)
		assert.True(t, apperror.IsConflictError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_Delete(t *testing.T) {
	t.Run("deletes existing user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM users`).
			WithArgs(1).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := NewPostgresRepository(mock)
		require.NoError(t, repo.Delete(context.Background(), 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM users`).
			WithArgs(42).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := NewPostgresRepository(mock)
		err = repo.Delete(context.Background(), 42)
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
