package repository

import (
	"context"
	"database/sql"
)

// IntegrationRepo handles third-party integration records.
type IntegrationRepo struct {
	db *sql.DB
}

func NewIntegrationRepo(db *sql.DB) *IntegrationRepo { return &IntegrationRepo{db: db} }

func (r *IntegrationRepo) Upsert(ctx context.Context, in Integration) error {
	connected := 0
	if in.Connected {
		connected = 1
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO integrations(id, name, category, description, connected)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 category=excluded.category,
	 description=excluded.description,
	 connected=excluded.connected;
	`, in.ID, in.Name, in.Category, in.Description, connected)
	return err
}

func (r *IntegrationRepo) List(ctx context.Context) ([]Integration, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, category, description, connected FROM integrations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Integration
	for rows.Next() {
		var in Integration
		var connected int
		if err := rows.Scan(&in.ID, &in.Name, &in.Category, &in.Description, &connected); err != nil {
			return nil, err
		}
		in.Connected = connected != 0
		out = append(out, in)
	}
	return out, rows.Err()
}
