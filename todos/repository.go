package todos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/user/todoserve-go/apperror"
)

// dbtx is the subset of pgxpool.Pool the repository needs.
type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository provides access to stored todos.
type Repository interface {
	FindAll(ctx context.Context) ([]Todo, error)
	FindByID(ctx context.Context, id int) (*Todo, error)
	Create(ctx context.Context, todo *Todo) (*Todo, error)
	Update(ctx context.Context, todo *Todo) (*Todo, error)
	Delete(ctx context.Context, id int) error
}

// PostgresRepository implements Repository over PostgreSQL.
type PostgresRepository struct {
	db dbtx
}

// NewPostgresRepository creates a new PostgreSQL todo repository.
func NewPostgresRepository(db dbtx) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

// FindAll returns every stored todo.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]Todo, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, is_done FROM todo ORDER BY id`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list todos", err)
	}
	defer rows.Close()

	list := []Todo{}
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.Name, &t.IsDone); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan todo row", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read todo rows", err)
	}
	return list, nil
}

// FindByID returns a single todo by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id int) (*Todo, error) {
	var t Todo
	err := r.db.QueryRow(ctx, `SELECT id, name, is_done FROM todo WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.IsDone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("todo with id %d not found", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get todo", err)
	}
	return &t, nil
}

// Create inserts a new todo.
func (r *PostgresRepository) Create(ctx context.Context, todo *Todo) (*Todo, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO todo (name, is_done) VALUES ($1, $2) RETURNING id`,
		todo.Name, todo.IsDone,
	).Scan(&todo.ID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create todo", err)
	}
	return todo, nil
}

// Update modifies an existing todo.
func (r *PostgresRepository) Update(ctx context.Context, todo *Todo) (*Todo, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE todo SET name = $1, is_done = $2 WHERE id = $3`,
		todo.Name, todo.IsDone, todo.ID,
	)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to update todo", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("todo with id %d not found", todo.ID), nil)
	}
	return todo, nil
}

// Delete removes a todo by identifier.
func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todo WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete todo", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("todo with id %d not found", id), nil)
	}
	return nil
}
