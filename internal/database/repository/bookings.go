package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// BookingFilters defines list filters.
type BookingFilters struct {
	PropertyID string
	RoomID     string
	GuestID    string
	Status     string
	Month      string // ISO month prefix, e.g. "2024-03"; empty = no filter
}

// BookingRepo handles bookings.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

func (r *BookingRepo) Insert(ctx context.Context, b Booking) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO bookings(id, property_id, room_id, guest_id, check_in, check_out, status, total_price, source, book_type, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, b.ID, b.PropertyID, b.RoomID, b.GuestID, b.CheckIn, b.CheckOut, b.Status, b.TotalPrice, b.Source, b.BookType)
	return err
}

// InsertBatch inserts a batch of new bookings in one transaction.
func (r *BookingRepo) InsertBatch(ctx context.Context, bookings []Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, b := range bookings {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO bookings(id, property_id, room_id, guest_id, check_in, check_out, status, total_price, source, book_type, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
			`, b.ID, b.PropertyID, b.RoomID, b.GuestID, b.CheckIn, b.CheckOut, b.Status, b.TotalPrice, b.Source, b.BookType); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *BookingRepo) Update(ctx context.Context, b Booking) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE bookings SET room_id = ?, guest_id = ?, check_in = ?, check_out = ?, status = ?,
	 total_price = ?, source = ?, book_type = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ?`, b.RoomID, b.GuestID, b.CheckIn, b.CheckOut, b.Status, b.TotalPrice, b.Source, b.BookType, b.ID)
	return err
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	return err
}

func (r *BookingRepo) Get(ctx context.Context, id string) (*Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, property_id, room_id, guest_id, check_in, check_out, status, total_price, source, book_type, created_at, updated_at FROM bookings WHERE id = ?`, id)
	var b Booking
	if err := row.Scan(&b.ID, &b.PropertyID, &b.RoomID, &b.GuestID, &b.CheckIn, &b.CheckOut, &b.Status, &b.TotalPrice, &b.Source, &b.BookType, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	payments, err := r.listPayments(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Payments = payments
	return &b, nil
}

func (r *BookingRepo) List(ctx context.Context, f BookingFilters) ([]Booking, error) {
	var where []string
	var args []interface{}

	if f.PropertyID != "" {
		where = append(where, "property_id = ?")
		args = append(args, f.PropertyID)
	}
	if f.RoomID != "" {
		where = append(where, "room_id = ?")
		args = append(args, f.RoomID)
	}
	if f.GuestID != "" {
		where = append(where, "guest_id = ?")
		args = append(args, f.GuestID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.Month != "" {
		where = append(where, "check_in LIKE ?")
		args = append(args, f.Month+"%")
	}

	query := "SELECT id, property_id, room_id, guest_id, check_in, check_out, status, total_price, source, book_type, created_at, updated_at FROM bookings"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY check_in DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.PropertyID, &b.RoomID, &b.GuestID, &b.CheckIn, &b.CheckOut, &b.Status, &b.TotalPrice, &b.Source, &b.BookType, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE booking_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
		return err
	})
}

// AddPayment records a payment against a booking.
func (r *BookingRepo) AddPayment(ctx context.Context, p Payment) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO payments(booking_id, amount, mode_id, account_id, date) VALUES (?, ?, ?, ?, ?)`,
		p.BookingID, p.Amount, p.ModeID, p.AccountID, p.Date)
	return err
}

func (r *BookingRepo) listPayments(ctx context.Context, bookingID string) ([]Payment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT booking_id, amount, mode_id, account_id, date FROM payments WHERE booking_id = ? ORDER BY date`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.BookingID, &p.Amount, &p.ModeID, &p.AccountID, &p.Date); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
