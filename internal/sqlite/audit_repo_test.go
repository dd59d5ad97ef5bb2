package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo-api/internal/model"
)

func TestAuditRepository_LogAndRecent(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	alice := createUser(t, users, "alice")
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Log(ctx, model.AuditEntry{
		Action:        model.AuditActionLogin,
		OccurredAt:    base,
		ActorUsername: "mallory",
		ActorIP:       "10.0.0.9",
		Status:        model.AuditStatusFailure,
		Detail:        "account_not_found",
	}))
	require.NoError(t, repo.Log(ctx, model.AuditEntry{
		Action:        model.AuditActionLogin,
		OccurredAt:    base.Add(time.Minute),
		ActorUserID:   alice.ID,
		ActorUsername: "alice",
		Status:        model.AuditStatusSuccess,
	}))

	entries, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "alice", entries[0].ActorUsername)
	assert.Equal(t, alice.ID, entries[0].ActorUserID)
	assert.Equal(t, base.Add(time.Minute), entries[0].OccurredAt)

	assert.Equal(t, int64(0), entries[1].ActorUserID)
	assert.Equal(t, "account_not_found", entries[1].Detail)

	limited, err := repo.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
