package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go-todo-api/internal/model"
	"go-todo-api/internal/util"
	"go-todo-api/pkg/apierror"
)

const (
	minTodoTitle       = 3
	minTodoDescription = 10
	maxTodoDescription = 100
	minPriority        = 1
	maxPriority        = 5
)

// TodoService scopes every operation to the owning account. A todo that
// belongs to someone else is reported exactly like one that does not exist.
type TodoService struct {
	store TodoStore
}

func NewTodoService(store TodoStore) *TodoService {
	return &TodoService{store: store}
}

func (s *TodoService) List(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

func (s *TodoService) Get(ctx context.Context, id int64, ownerID int64) (model.Todo, error) {
	if err := validateID(id); err != nil {
		return model.Todo{}, err
	}
	return s.store.FindForOwner(ctx, id, ownerID)
}

func (s *TodoService) Create(ctx context.Context, ownerID int64, req model.TodoRequest) (model.Todo, error) {
	if err := validateTodo(req); err != nil {
		return model.Todo{}, err
	}

	todo, err := s.store.Create(ctx, model.Todo{
		Title:       util.CleanText(req.Title),
		Description: util.CleanText(req.Description),
		Priority:    req.Priority,
		Complete:    req.Complete,
		OwnerID:     ownerID,
	})
	if err != nil {
		return model.Todo{}, fmt.Errorf("create todo: %w", err)
	}

	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, id int64, ownerID int64, req model.TodoRequest) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := validateTodo(req); err != nil {
		return err
	}

	return s.store.Update(ctx, model.Todo{
		ID:          id,
		Title:       util.CleanText(req.Title),
		Description: util.CleanText(req.Description),
		Priority:    req.Priority,
		Complete:    req.Complete,
		OwnerID:     ownerID,
	})
}

func (s *TodoService) Delete(ctx context.Context, id int64, ownerID int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.store.DeleteForOwner(ctx, id, ownerID)
}

// ListAll and DeleteAny ignore ownership; the router only mounts them
// behind the admin role check.
func (s *TodoService) ListAll(ctx context.Context) ([]model.Todo, error) {
	return s.store.ListAll(ctx)
}

func (s *TodoService) DeleteAny(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func validateID(id int64) error {
	if id <= 0 {
		return apierror.BadRequest("id must be a positive integer", "id")
	}
	return nil
}

func validateTodo(req model.TodoRequest) error {
	if utf8.RuneCountInString(util.CleanText(req.Title)) < minTodoTitle {
		return apierror.BadRequest(fmt.Sprintf("title must be at least %d characters", minTodoTitle), "title")
	}

	n := utf8.RuneCountInString(util.CleanText(req.Description))
	if n < minTodoDescription || n > maxTodoDescription {
		return apierror.BadRequest(
			fmt.Sprintf("description must be between %d and %d characters", minTodoDescription, maxTodoDescription), "description")
	}

	if req.Priority < minPriority || req.Priority > maxPriority {
		return apierror.BadRequest(fmt.Sprintf("priority must be between %d and %d", minPriority, maxPriority), "priority")
	}

	return nil
}
