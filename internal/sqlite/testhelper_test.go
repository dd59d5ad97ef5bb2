package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"go-todo-api/internal/model"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenInMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func createUser(t *testing.T, repo *UserRepository, username string) model.User {
	t.Helper()

	u, err := repo.Create(context.Background(), model.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "First",
		LastName:     "Last",
		PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderplaceho",
		Role:         model.RoleUser,
		IsActive:     true,
	})
	require.NoError(t, err)

	return u
}
