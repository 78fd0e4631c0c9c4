package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// RoomRepo handles rooms.
type RoomRepo struct {
	db *sql.DB
}

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

func (r *RoomRepo) Upsert(ctx context.Context, room Room) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO rooms(id, name, type, property_id, housekeeping_status, fo_remarks, hk_remarks, housekeeper_id)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 type=excluded.type,
	 housekeeping_status=excluded.housekeeping_status,
	 fo_remarks=excluded.fo_remarks,
	 hk_remarks=excluded.hk_remarks,
	 housekeeper_id=excluded.housekeeper_id;
	`, room.ID, room.Name, room.Type, room.PropertyID, room.HousekeepingStatus,
		room.FrontOfficeRemarks, room.HousekeepingRemark, room.HousekeeperID)
	return err
}

func (r *RoomRepo) Get(ctx context.Context, id string) (*Room, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, type, property_id, housekeeping_status, fo_remarks, hk_remarks, housekeeper_id FROM rooms WHERE id = ?`, id)
	var room Room
	if err := row.Scan(&room.ID, &room.Name, &room.Type, &room.PropertyID, &room.HousekeepingStatus, &room.FrontOfficeRemarks, &room.HousekeepingRemark, &room.HousekeeperID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepo) ListByProperty(ctx context.Context, propertyID string) ([]Room, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, type, property_id, housekeeping_status, fo_remarks, hk_remarks, housekeeper_id FROM rooms WHERE property_id = ? ORDER BY name`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Type, &room.PropertyID, &room.HousekeepingStatus, &room.FrontOfficeRemarks, &room.HousekeepingRemark, &room.HousekeeperID); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

// Delete removes a room and any bookings that reference it.
func (r *RoomRepo) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE booking_id IN (SELECT id FROM bookings WHERE room_id = ?)`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE room_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
		return err
	})
}

// BulkCreate creates rooms named prefix+start .. prefix+end, all CLEAN.
func (r *RoomRepo) BulkCreate(ctx context.Context, propertyID, prefix string, start, end int, roomType string) ([]Room, error) {
	if end < start {
		return nil, fmt.Errorf("invalid range %d..%d", start, end)
	}
	var out []Room
	for i := start; i <= end; i++ {
		room := Room{
			ID:                 uuid.NewString(),
			Name:               fmt.Sprintf("%s%d", prefix, i),
			Type:               roomType,
			PropertyID:         propertyID,
			HousekeepingStatus: HousekeepingClean,
		}
		if err := r.Upsert(ctx, room); err != nil {
			return out, err
		}
		out = append(out, room)
	}
	return out, nil
}

// UpdateHousekeeping moves a room through the housekeeping cycle.
func (r *RoomRepo) UpdateHousekeeping(ctx context.Context, id, status string, housekeeperID *string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE rooms SET housekeeping_status = ?, housekeeper_id = ? WHERE id = ?`, status, housekeeperID, id)
	return err
}

// UpdateRemarks sets front-office and housekeeping remarks.
func (r *RoomRepo) UpdateRemarks(ctx context.Context, id string, foRemarks, hkRemarks *string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE rooms SET fo_remarks = ?, hk_remarks = ? WHERE id = ?`, foRemarks, hkRemarks, id)
	return err
}
