package service

import (
	"context"
	"database/sql"
	"fmt"
)

// ReportsService computes occupancy and revenue aggregates straight from the
// store. Cancelled bookings never count.
type ReportsService struct {
	DB *sql.DB
}

// RevenuePoint is one month of a property's revenue report.
type RevenuePoint struct {
	Month    string // ISO month, e.g. "2024-03"
	Revenue  float64
	Bookings int
}

// DashboardSnapshot summarizes one property for one calendar date.
type DashboardSnapshot struct {
	Rooms        int
	Occupied     int
	Arrivals     int
	Departures   int
	MonthRevenue float64
}

// RevenueByMonth groups booking revenue by check-in month, oldest first.
func (s *ReportsService) RevenueByMonth(ctx context.Context, propertyID string) ([]RevenuePoint, error) {
	rows, err := s.DB.QueryContext(ctx, `
	SELECT substr(check_in, 1, 7) AS month, SUM(total_price), COUNT(*)
	FROM bookings
	WHERE property_id = ? AND status != 'CANCELLED'
	GROUP BY month
	ORDER BY month`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("revenue query: %w", err)
	}
	defer rows.Close()
	var out []RevenuePoint
	for rows.Next() {
		var p RevenuePoint
		if err := rows.Scan(&p.Month, &p.Revenue, &p.Bookings); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// OccupancyOn returns the fraction of the property's rooms occupied on date
// (ISO form). A room is occupied when a non-cancelled booking spans the
// date: check_in <= date < check_out.
func (s *ReportsService) OccupancyOn(ctx context.Context, propertyID, date string) (float64, error) {
	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms WHERE property_id = ?`, propertyID).Scan(&total); err != nil {
		return 0, fmt.Errorf("room count: %w", err)
	}
	if total == 0 {
		return 0, nil
	}
	var occupied int
	if err := s.DB.QueryRowContext(ctx, `
	SELECT COUNT(DISTINCT room_id) FROM bookings
	WHERE property_id = ? AND status != 'CANCELLED' AND check_in <= ? AND check_out > ?`,
		propertyID, date, date).Scan(&occupied); err != nil {
		return 0, fmt.Errorf("occupancy count: %w", err)
	}
	return float64(occupied) / float64(total), nil
}

// Snapshot builds the dashboard numbers for one property and date.
func (s *ReportsService) Snapshot(ctx context.Context, propertyID, date string) (DashboardSnapshot, error) {
	var snap DashboardSnapshot
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms WHERE property_id = ?`, propertyID).Scan(&snap.Rooms); err != nil {
		return snap, err
	}
	if err := s.DB.QueryRowContext(ctx, `
	SELECT COUNT(DISTINCT room_id) FROM bookings
	WHERE property_id = ? AND status != 'CANCELLED' AND check_in <= ? AND check_out > ?`,
		propertyID, date, date).Scan(&snap.Occupied); err != nil {
		return snap, err
	}
	if err := s.DB.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM bookings WHERE property_id = ? AND status != 'CANCELLED' AND check_in = ?`,
		propertyID, date).Scan(&snap.Arrivals); err != nil {
		return snap, err
	}
	if err := s.DB.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM bookings WHERE property_id = ? AND status != 'CANCELLED' AND check_out = ?`,
		propertyID, date).Scan(&snap.Departures); err != nil {
		return snap, err
	}
	if err := s.DB.QueryRowContext(ctx, `
	SELECT COALESCE(SUM(total_price), 0) FROM bookings
	WHERE property_id = ? AND status != 'CANCELLED' AND substr(check_in, 1, 7) = substr(?, 1, 7)`,
		propertyID, date).Scan(&snap.MonthRevenue); err != nil {
		return snap, err
	}
	return snap, nil
}
