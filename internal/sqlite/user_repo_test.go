package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo-api/internal/model"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := createUser(t, repo, "alice")
	assert.Positive(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byName, err := repo.FindByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, "alice@example.com", byName.Email)
	assert.Equal(t, created.PasswordHash, byName.PasswordHash)
	assert.True(t, byName.IsActive)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.WithinDuration(t, created.CreatedAt, byID.CreatedAt, 0)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.FindByUsername(ctx, "nobody")
	require.ErrorIs(t, err, model.ErrUserNotFound)

	_, err = repo.FindByID(ctx, 999)
	require.ErrorIs(t, err, model.ErrUserNotFound)

	err = repo.UpdatePassword(ctx, 999, "hash")
	require.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestUserRepository_Duplicates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createUser(t, repo, "alice")

	_, err := repo.Create(ctx, model.User{Username: "Alice", Email: "other@example.com", PasswordHash: "x", Role: model.RoleUser})
	require.ErrorIs(t, err, model.ErrUserAlreadyExists)

	_, err = repo.Create(ctx, model.User{Username: "bob", Email: "ALICE@example.com", PasswordHash: "x", Role: model.RoleUser})
	require.ErrorIs(t, err, model.ErrUserAlreadyExists)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createUser(t, repo, "alice")
	require.NoError(t, repo.UpdatePassword(ctx, alice.ID, "new-hash"))

	got, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}
