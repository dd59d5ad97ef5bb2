package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"go-todo-api/internal/model"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

type mockTodoStore struct {
	mock.Mock
}

func (m *mockTodoStore) ListByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *mockTodoStore) ListAll(ctx context.Context) ([]model.Todo, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *mockTodoStore) FindForOwner(ctx context.Context, id int64, ownerID int64) (model.Todo, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *mockTodoStore) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	args := m.Called(ctx, todo)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *mockTodoStore) Update(ctx context.Context, todo model.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *mockTodoStore) DeleteForOwner(ctx context.Context, id int64, ownerID int64) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *mockTodoStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockAuditStore struct {
	mock.Mock
}

func (m *mockAuditStore) Log(ctx context.Context, entry model.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockAuditStore) Recent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]model.AuditEntry), args.Error(1)
}

// auditEntry matches a logged entry by action, status and detail.
func auditEntry(action string, status string, detail string) any {
	return mock.MatchedBy(func(e model.AuditEntry) bool {
		return e.Action == action && e.Status == status && e.Detail == detail
	})
}
