package repository

import (
	"context"
	"database/sql"
)

// AuditRepo handles the audit trail.
type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo { return &AuditRepo{db: db} }

func (r *AuditRepo) Insert(ctx context.Context, e AuditLog) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO audit_logs(id, timestamp, user_id, action, details)
	VALUES (?, ?, ?, ?, ?);
	`, e.ID, e.Timestamp, e.UserID, e.Action, e.Details)
	return err
}

// Recent returns the latest limit entries, newest first.
func (r *AuditRepo) Recent(ctx context.Context, limit int) ([]AuditLog, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, timestamp, user_id, action, details FROM audit_logs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AuditLog
	for rows.Next() {
		var e AuditLog
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.UserID, &e.Action, &e.Details); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
