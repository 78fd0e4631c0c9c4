package repository

import (
	"context"
	"database/sql"
)

// SaaSRepo handles the super-admin collections: subscription plans, platform
// customers, and platform-level logs. They are seed-only in the dashboard;
// the super-admin view reads them.
type SaaSRepo struct {
	db *sql.DB
}

func NewSaaSRepo(db *sql.DB) *SaaSRepo { return &SaaSRepo{db: db} }

func (r *SaaSRepo) UpsertPlan(ctx context.Context, p SubscriptionPlan) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO subscription_plans(name, monthly_rate, property_limit, user_limit)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
	 monthly_rate=excluded.monthly_rate,
	 property_limit=excluded.property_limit,
	 user_limit=excluded.user_limit;
	`, p.Name, p.MonthlyRate, p.PropertyLimit, p.UserLimit)
	return err
}

func (r *SaaSRepo) ListPlans(ctx context.Context) ([]SubscriptionPlan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, monthly_rate, property_limit, user_limit FROM subscription_plans ORDER BY monthly_rate`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SubscriptionPlan
	for rows.Next() {
		var p SubscriptionPlan
		if err := rows.Scan(&p.Name, &p.MonthlyRate, &p.PropertyLimit, &p.UserLimit); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SaaSRepo) UpsertCustomer(ctx context.Context, c SaaSCustomer) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO saas_customers(id, name, status, plan_name, member_since)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 status=excluded.status,
	 plan_name=excluded.plan_name;
	`, c.ID, c.Name, c.Status, c.PlanName, c.MemberSince)
	return err
}

func (r *SaaSRepo) ListCustomers(ctx context.Context) ([]SaaSCustomer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, status, plan_name, member_since FROM saas_customers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SaaSCustomer
	for rows.Next() {
		var c SaaSCustomer
		if err := rows.Scan(&c.ID, &c.Name, &c.Status, &c.PlanName, &c.MemberSince); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SaaSRepo) InsertSystemLog(ctx context.Context, l SystemLog) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO system_logs(id, timestamp, level, service, message)
	VALUES (?, ?, ?, ?, ?);
	`, l.ID, l.Timestamp, l.Level, l.Service, l.Message)
	return err
}

// RecentSystemLogs returns the latest limit entries, newest first.
func (r *SaaSRepo) RecentSystemLogs(ctx context.Context, limit int) ([]SystemLog, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, timestamp, level, service, message FROM system_logs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SystemLog
	for rows.Next() {
		var l SystemLog
		if err := rows.Scan(&l.ID, &l.Timestamp, &l.Level, &l.Service, &l.Message); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
