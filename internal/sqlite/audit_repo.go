package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go-todo-api/internal/model"
)

type AuditRepository struct {
	db *DB
}

func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Log(ctx context.Context, entry model.AuditEntry) error {
	actorID := sql.NullInt64{Int64: entry.ActorUserID, Valid: entry.ActorUserID > 0}

	_, err := r.db.Writer.ExecContext(ctx,
		`INSERT INTO audit_entries (action, occurred_at, actor_user_id, actor_username, actor_ip, status, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Action, formatTime(entry.OccurredAt), actorID, entry.ActorUsername, entry.ActorIP, entry.Status, entry.Detail)
	if err != nil {
		return fmt.Errorf("log audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	rows, err := r.db.Reader.QueryContext(ctx,
		`SELECT id, action, occurred_at, COALESCE(actor_user_id, 0), actor_username, actor_ip, status, detail
		 FROM audit_entries
		 ORDER BY id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var (
			e          model.AuditEntry
			occurredAt string
		)
		if err := rows.Scan(&e.ID, &e.Action, &occurredAt, &e.ActorUserID, &e.ActorUsername,
			&e.ActorIP, &e.Status, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if e.OccurredAt, err = parseTime(occurredAt); err != nil {
			return nil, fmt.Errorf("parse occurred_at: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
