package todos

import (
	"context"
	"log/slog"

	"github.com/user/todoserve-go/result"
)

// Service implements the todo CRUD operations, wrapping every outcome in the
// result envelope.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a todo Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// FindAll returns every todo.
func (s *Service) FindAll(ctx context.Context) (result.Result, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return result.Result{}, err
	}
	return result.OK("Todos found!", list), nil
}

// FindOne returns a single todo by id.
func (s *Service) FindOne(ctx context.Context, id int) (result.Result, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return result.Result{}, err
	}
	return result.OK("Todo found!", todo), nil
}

// Create inserts a new todo.
func (s *Service) Create(ctx context.Context, req TodoRequest) (result.Result, error) {
	todo := &Todo{Name: req.Name, IsDone: *req.IsDone}

	created, err := s.repo.Create(ctx, todo)
	if err != nil {
		return result.Result{}, err
	}

	s.logger.Info("new todo has been inserted", "todo_id", created.ID)
	return result.OK("Todo created!", created), nil
}

// Update modifies an existing todo.
func (s *Service) Update(ctx context.Context, id int, req TodoRequest) (result.Result, error) {
	todo := &Todo{ID: id, Name: req.Name, IsDone: *req.IsDone}

	updated, err := s.repo.Update(ctx, todo)
	if err != nil {
		return result.Result{}, err
	}

	s.logger.Info("todo has been updated", "todo_id", id)
	return result.OK("Todo updated!", updated), nil
}

// Delete removes a todo.
func (s *Service) Delete(ctx context.Context, id int) (result.Result, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return result.Result{}, err
	}

	s.logger.Info("todo has been deleted", "todo_id", id)
	return result.OK("Todo deleted!", nil), nil
}
