package repository

import (
	"context"
	"database/sql"
)

// PaymentModeRepo handles payment modes.
type PaymentModeRepo struct {
	db *sql.DB
}

func NewPaymentModeRepo(db *sql.DB) *PaymentModeRepo { return &PaymentModeRepo{db: db} }

func (r *PaymentModeRepo) Upsert(ctx context.Context, m PaymentMode) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO payment_modes(id, name) VALUES (?, ?)
	ON CONFLICT(id) DO UPDATE SET name=excluded.name;
	`, m.ID, m.Name)
	return err
}

func (r *PaymentModeRepo) List(ctx context.Context) ([]PaymentMode, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM payment_modes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PaymentMode
	for rows.Next() {
		var m PaymentMode
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PaymentModeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM payment_modes WHERE id = ?`, id)
	return err
}

// PaymentAccountRepo handles payment accounts.
type PaymentAccountRepo struct {
	db *sql.DB
}

func NewPaymentAccountRepo(db *sql.DB) *PaymentAccountRepo { return &PaymentAccountRepo{db: db} }

func (r *PaymentAccountRepo) Upsert(ctx context.Context, a PaymentAccount) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO payment_accounts(id, name, details) VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET name=excluded.name, details=excluded.details;
	`, a.ID, a.Name, a.Details)
	return err
}

func (r *PaymentAccountRepo) List(ctx context.Context) ([]PaymentAccount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, details FROM payment_accounts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PaymentAccount
	for rows.Next() {
		var a PaymentAccount
		if err := rows.Scan(&a.ID, &a.Name, &a.Details); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PaymentAccountRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM payment_accounts WHERE id = ?`, id)
	return err
}
