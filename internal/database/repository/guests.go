package repository

import (
	"context"
	"database/sql"
	"errors"
)

// GuestRepo handles guests.
type GuestRepo struct {
	db *sql.DB
}

func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

func (r *GuestRepo) Upsert(ctx context.Context, g Guest) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO guests(id, name, email, phone)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 email=excluded.email,
	 phone=excluded.phone;
	`, g.ID, g.Name, g.Email, g.Phone)
	return err
}

// InsertBatch inserts a batch of new guests in one transaction.
func (r *GuestRepo) InsertBatch(ctx context.Context, guests []Guest) error {
	if len(guests) == 0 {
		return nil
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, g := range guests {
			if _, err := tx.ExecContext(ctx, `INSERT INTO guests(id, name, email, phone) VALUES (?, ?, ?, ?)`, g.ID, g.Name, g.Email, g.Phone); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GuestRepo) Get(ctx context.Context, id string) (*Guest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, phone FROM guests WHERE id = ?`, id)
	var g Guest
	if err := row.Scan(&g.ID, &g.Name, &g.Email, &g.Phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *GuestRepo) List(ctx context.Context) ([]Guest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, phone FROM guests ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Guest
	for rows.Next() {
		var g Guest
		if err := rows.Scan(&g.ID, &g.Name, &g.Email, &g.Phone); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Delete removes a guest and any bookings that reference them.
func (r *GuestRepo) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE booking_id IN (SELECT id FROM bookings WHERE guest_id = ?)`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE guest_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM guests WHERE id = ?`, id)
		return err
	})
}
