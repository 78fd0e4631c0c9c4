package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrLastProperty is returned when deleting the only remaining property.
var ErrLastProperty = errors.New("cannot delete the last property")

// PropertyRepo handles properties.
type PropertyRepo struct {
	db *sql.DB
}

func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{db: db} }

func (r *PropertyRepo) Upsert(ctx context.Context, p Property) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO properties(id, name, location, customer_id, phone, management_type, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 location=excluded.location,
	 phone=excluded.phone,
	 management_type=excluded.management_type,
	 updated_at=CURRENT_TIMESTAMP;
	`, p.ID, p.Name, p.Location, p.CustomerID, p.Phone, p.ManagementType)
	return err
}

func (r *PropertyRepo) Get(ctx context.Context, id string) (*Property, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, location, customer_id, phone, management_type, created_at, updated_at FROM properties WHERE id = ?`, id)
	var p Property
	if err := row.Scan(&p.ID, &p.Name, &p.Location, &p.CustomerID, &p.Phone, &p.ManagementType, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepo) List(ctx context.Context) ([]Property, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, location, customer_id, phone, management_type, created_at, updated_at FROM properties ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Property
	for rows.Next() {
		var p Property
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.CustomerID, &p.Phone, &p.ManagementType, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a property together with its rooms and bookings. The last
// remaining property cannot be deleted.
func (r *PropertyRepo) Delete(ctx context.Context, id string) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&count); err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastProperty
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE booking_id IN (SELECT id FROM bookings WHERE property_id = ?)`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE property_id = ?`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE property_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
		return err
	})
}
