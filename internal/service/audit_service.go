package service

import (
	"context"
	"log/slog"
	"time"

	"go-todo-api/internal/model"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditService struct {
	store AuditStore
	now   func() time.Time
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store, now: time.Now}
}

// Log records an entry. A failed write is logged and swallowed so auditing
// never changes the outcome of the request being audited.
func (s *AuditService) Log(ctx context.Context, action string, actor model.AuditActor, status string, detail string) {
	if s == nil || s.store == nil {
		return
	}

	entry := model.AuditEntry{
		Action:        action,
		OccurredAt:    s.now().UTC(),
		ActorUserID:   actor.UserID,
		ActorUsername: actor.Username,
		ActorIP:       actor.IP,
		Status:        status,
		Detail:        detail,
	}

	if err := s.store.Log(ctx, entry); err != nil {
		slog.Warn("audit write failed", "action", action, "status", status, "error", err)
	}
}

func (s *AuditService) Recent(ctx context.Context, limit int) ([]model.AuditEntry, model.Meta, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	entries, err := s.store.Recent(ctx, limit)
	if err != nil {
		return nil, model.Meta{}, err
	}

	return entries, model.Meta{Total: len(entries), Limit: limit}, nil
}
