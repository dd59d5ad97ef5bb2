package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo-api/internal/model"
	"go-todo-api/internal/service"
)

type recordingAuditStore struct {
	limits []int
}

func (s *recordingAuditStore) Log(context.Context, model.AuditEntry) error { return nil }

func (s *recordingAuditStore) Recent(_ context.Context, limit int) ([]model.AuditEntry, error) {
	s.limits = append(s.limits, limit)
	return []model.AuditEntry{}, nil
}

func TestAdminHandler_ListAuditLimit(t *testing.T) {
	store := &recordingAuditStore{}
	h := NewAdminHandler(nil, service.NewAuditService(store))

	for _, query := range []string{"", "?limit=abc", "?limit=0", "?limit=500", "?limit=5"} {
		rec := httptest.NewRecorder()
		h.ListAudit(rec, httptest.NewRequest(http.MethodGet, "/admin/audit"+query, nil))
		require.Equal(t, http.StatusOK, rec.Code, query)
	}

	assert.Equal(t, []int{50, 50, 50, 200, 5}, store.limits)
}
