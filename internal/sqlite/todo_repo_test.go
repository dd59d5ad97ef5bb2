package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo-api/internal/model"
)

func makeTodo(ownerID int64, title string) model.Todo {
	return model.Todo{
		Title:       title,
		Description: "a description long enough",
		Priority:    3,
		OwnerID:     ownerID,
	}
}

func TestTodoRepository_OwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	aliceTodo, err := repo.Create(ctx, makeTodo(alice.ID, "alice todo"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, makeTodo(bob.ID, "bob todo"))
	require.NoError(t, err)

	mine, err := repo.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "alice todo", mine[0].Title)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = repo.FindForOwner(ctx, aliceTodo.ID, bob.ID)
	require.ErrorIs(t, err, model.ErrTodoNotFound)

	err = repo.DeleteForOwner(ctx, aliceTodo.ID, bob.ID)
	require.ErrorIs(t, err, model.ErrTodoNotFound)

	got, err := repo.FindForOwner(ctx, aliceTodo.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, aliceTodo, got)
}

func TestTodoRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	alice := createUser(t, users, "alice")
	todo, err := repo.Create(ctx, makeTodo(alice.ID, "write tests"))
	require.NoError(t, err)

	todo.Complete = true
	todo.Priority = 5
	require.NoError(t, repo.Update(ctx, todo))

	got, err := repo.FindForOwner(ctx, todo.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, got.Complete)
	assert.Equal(t, 5, got.Priority)

	foreign := todo
	foreign.OwnerID = alice.ID + 100
	require.ErrorIs(t, repo.Update(ctx, foreign), model.ErrTodoNotFound)

	require.NoError(t, repo.Delete(ctx, todo.ID))
	require.ErrorIs(t, repo.Delete(ctx, todo.ID), model.ErrTodoNotFound)
}

func TestTodoRepository_ListEmptyIsNotNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTodoRepository(db)

	todos, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)
}
