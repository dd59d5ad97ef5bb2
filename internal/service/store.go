package service

import (
	"context"

	"go-todo-api/internal/model"
)

// UserStore is implemented by both the PostgreSQL and SQLite repositories.
// Lookups report absence with a wrapped model.ErrUserNotFound.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, user model.User) (model.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type TodoStore interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error)
	ListAll(ctx context.Context) ([]model.Todo, error)
	FindForOwner(ctx context.Context, id int64, ownerID int64) (model.Todo, error)
	Create(ctx context.Context, todo model.Todo) (model.Todo, error)
	Update(ctx context.Context, todo model.Todo) error
	DeleteForOwner(ctx context.Context, id int64, ownerID int64) error
	Delete(ctx context.Context, id int64) error
}

type AuditStore interface {
	Log(ctx context.Context, entry model.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]model.AuditEntry, error)
}
