package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go-todo-api/internal/model"
)

const todoColumns = `id, title, description, priority, complete, owner_id`

type TodoRepository struct {
	db *DB
}

func NewTodoRepository(db *DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	return r.list(ctx, `SELECT `+todoColumns+` FROM todos WHERE owner_id = ? ORDER BY id`, ownerID)
}

func (r *TodoRepository) ListAll(ctx context.Context) ([]model.Todo, error) {
	return r.list(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY id`)
}

func (r *TodoRepository) FindForOwner(ctx context.Context, id int64, ownerID int64) (model.Todo, error) {
	t, err := scanTodo(r.db.Reader.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ? AND owner_id = ?`, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Todo{}, fmt.Errorf("find todo %d: %w", id, model.ErrTodoNotFound)
	}
	if err != nil {
		return model.Todo{}, fmt.Errorf("find todo: %w", err)
	}
	return t, nil
}

func (r *TodoRepository) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	result, err := r.db.Writer.ExecContext(ctx,
		`INSERT INTO todos (title, description, priority, complete, owner_id) VALUES (?, ?, ?, ?, ?)`,
		t.Title, t.Description, t.Priority, t.Complete, t.OwnerID)
	if err != nil {
		return model.Todo{}, fmt.Errorf("create todo: %w", err)
	}

	t.ID, err = result.LastInsertId()
	if err != nil {
		return model.Todo{}, fmt.Errorf("read todo id: %w", err)
	}
	return t, nil
}

func (r *TodoRepository) Update(ctx context.Context, t model.Todo) error {
	result, err := r.db.Writer.ExecContext(ctx,
		`UPDATE todos SET title = ?, description = ?, priority = ?, complete = ? WHERE id = ? AND owner_id = ?`,
		t.Title, t.Description, t.Priority, t.Complete, t.ID, t.OwnerID)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	return requireAffected(result, fmt.Errorf("update todo %d: %w", t.ID, model.ErrTodoNotFound))
}

func (r *TodoRepository) DeleteForOwner(ctx context.Context, id int64, ownerID int64) error {
	result, err := r.db.Writer.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return requireAffected(result, fmt.Errorf("delete todo %d: %w", id, model.ErrTodoNotFound))
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Writer.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return requireAffected(result, fmt.Errorf("delete todo %d: %w", id, model.ErrTodoNotFound))
}

func (r *TodoRepository) list(ctx context.Context, query string, args ...any) ([]model.Todo, error) {
	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]model.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

func scanTodo(s scanner) (model.Todo, error) {
	var t model.Todo
	err := s.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Complete, &t.OwnerID)
	return t, err
}

func requireAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
