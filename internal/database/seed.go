package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/innboard/innboard/internal/database/repository"
)

func seedID(kind, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+":"+key)).String()
}

// Seed loads the demo dataset into a fresh database. It is idempotent and
// safe to run on every startup; an already-seeded database is left alone.
func Seed(ctx context.Context, db *sql.DB) error {
	props := repository.NewPropertyRepo(db)
	existing, err := props.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}

	sunrise := repository.Property{
		ID:             seedID("prop", "sunrise"),
		Name:           "Sunrise Grand",
		Location:       "Jaipur",
		CustomerID:     seedID("cust", "zenith"),
		Phone:          "+91 98765 10001",
		ManagementType: repository.ManagementOYO,
	}
	harbor := repository.Property{
		ID:             seedID("prop", "harbor"),
		Name:           "Harbor View Inn",
		Location:       "Kochi",
		CustomerID:     seedID("cust", "zenith"),
		Phone:          "+91 98765 10002",
		ManagementType: repository.ManagementSelf,
	}
	for _, p := range []repository.Property{sunrise, harbor} {
		if err := props.Upsert(ctx, p); err != nil {
			return fmt.Errorf("seed property %s: %w", p.Name, err)
		}
	}

	rooms := repository.NewRoomRepo(db)
	type roomSpec struct {
		prop string
		name string
		kind string
		hk   string
	}
	roomSpecs := []roomSpec{
		{sunrise.ID, "101", repository.RoomSingle, repository.HousekeepingClean},
		{sunrise.ID, "102", repository.RoomSingle, repository.HousekeepingDirty},
		{sunrise.ID, "103", repository.RoomDouble, repository.HousekeepingClean},
		{sunrise.ID, "104", repository.RoomDouble, repository.HousekeepingInProgress},
		{sunrise.ID, "105", repository.RoomSuite, repository.HousekeepingClean},
		{harbor.ID, "201", repository.RoomDouble, repository.HousekeepingClean},
		{harbor.ID, "202", repository.RoomDouble, repository.HousekeepingInspection},
		{harbor.ID, "203", repository.RoomSuite, repository.HousekeepingClean},
	}
	for _, rs := range roomSpecs {
		room := repository.Room{
			ID:                 seedID("room", rs.prop+"/"+rs.name),
			Name:               rs.name,
			Type:               rs.kind,
			PropertyID:         rs.prop,
			HousekeepingStatus: rs.hk,
		}
		if err := rooms.Upsert(ctx, room); err != nil {
			return fmt.Errorf("seed room %s: %w", rs.name, err)
		}
	}

	guests := repository.NewGuestRepo(db)
	guestSpecs := []repository.Guest{
		{ID: seedID("guest", "priya"), Name: "Priya Sharma", Email: "priya.sharma@example.com", Phone: "+91 98111 22001"},
		{ID: seedID("guest", "arjun"), Name: "Arjun Mehta", Email: "arjun.mehta@example.com", Phone: "+91 98111 22002"},
		{ID: seedID("guest", "elena"), Name: "Elena Petrova", Email: "elena.petrova@example.com", Phone: "+7 911 000 2203"},
	}
	for _, g := range guestSpecs {
		if err := guests.Upsert(ctx, g); err != nil {
			return fmt.Errorf("seed guest %s: %w", g.Name, err)
		}
	}

	bookings := repository.NewBookingRepo(db)
	bookingSpecs := []repository.Booking{
		{
			ID:         seedID("booking", "b1"),
			PropertyID: sunrise.ID,
			RoomID:     seedID("room", sunrise.ID+"/101"),
			GuestID:    guestSpecs[0].ID,
			CheckIn:    "2024-03-10",
			CheckOut:   "2024-03-12",
			Status:     repository.BookingCheckedOut,
			TotalPrice: 180,
			Source:     "Walk-in",
			BookType:   repository.BookTypeOne,
		},
		{
			ID:         seedID("booking", "b2"),
			PropertyID: sunrise.ID,
			RoomID:     seedID("room", sunrise.ID+"/103"),
			GuestID:    guestSpecs[1].ID,
			CheckIn:    "2024-03-15",
			CheckOut:   "2024-03-18",
			Status:     repository.BookingConfirmed,
			TotalPrice: 420,
			Source:     "Website",
			BookType:   repository.BookTypeTwo,
		},
		{
			ID:         seedID("booking", "b3"),
			PropertyID: harbor.ID,
			RoomID:     seedID("room", harbor.ID+"/201"),
			GuestID:    guestSpecs[2].ID,
			CheckIn:    "2024-03-16",
			CheckOut:   "2024-03-20",
			Status:     repository.BookingCheckedIn,
			TotalPrice: 560,
			Source:     "OTA",
			BookType:   repository.BookTypeOne,
		},
	}
	for _, b := range bookingSpecs {
		if err := bookings.Insert(ctx, b); err != nil {
			return fmt.Errorf("seed booking %s: %w", b.ID, err)
		}
	}

	users := repository.NewUserRepo(db)
	userSpecs := []repository.User{
		{ID: seedID("user", "admin"), Name: "Asha Nair", Role: "Admin"},
		{ID: seedID("user", "manager"), Name: "Rahul Verma", Role: "Manager"},
		{ID: seedID("user", "staff"), Name: "Sneha Pillai", Role: "Staff"},
	}
	for _, u := range userSpecs {
		if err := users.Upsert(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Name, err)
		}
	}

	modes := repository.NewPaymentModeRepo(db)
	for _, name := range []string{"Cash", "Card", "UPI"} {
		if err := modes.Upsert(ctx, repository.PaymentMode{ID: seedID("paymode", name), Name: name}); err != nil {
			return fmt.Errorf("seed payment mode %s: %w", name, err)
		}
	}
	accounts := repository.NewPaymentAccountRepo(db)
	accountSpecs := []repository.PaymentAccount{
		{ID: seedID("payacct", "front-desk"), Name: "Front Desk Till", Details: "Cash drawer, reception"},
		{ID: seedID("payacct", "hdfc"), Name: "HDFC Current", Details: "A/C ****4821"},
	}
	for _, a := range accountSpecs {
		if err := accounts.Upsert(ctx, a); err != nil {
			return fmt.Errorf("seed payment account %s: %w", a.Name, err)
		}
	}

	integrations := repository.NewIntegrationRepo(db)
	integrationSpecs := []repository.Integration{
		{ID: seedID("integration", "siteminder"), Name: "SiteMinder", Category: "Channel Manager", Description: "Channel distribution and rate sync"},
		{ID: seedID("integration", "razorpay"), Name: "Razorpay", Category: "Payment Gateway", Description: "Card and UPI payments", Connected: true},
		{ID: seedID("integration", "tally"), Name: "Tally", Category: "Accounting", Description: "Ledger export"},
	}
	for _, in := range integrationSpecs {
		if err := integrations.Upsert(ctx, in); err != nil {
			return fmt.Errorf("seed integration %s: %w", in.Name, err)
		}
	}

	saas := repository.NewSaaSRepo(db)
	planSpecs := []repository.SubscriptionPlan{
		{Name: "Basic", MonthlyRate: 49, PropertyLimit: 1, UserLimit: 5},
		{Name: "Pro", MonthlyRate: 149, PropertyLimit: 5, UserLimit: 25},
		{Name: "Enterprise", MonthlyRate: 499, PropertyLimit: 50, UserLimit: 250},
	}
	for _, p := range planSpecs {
		if err := saas.UpsertPlan(ctx, p); err != nil {
			return fmt.Errorf("seed plan %s: %w", p.Name, err)
		}
	}
	customerSpecs := []repository.SaaSCustomer{
		{ID: seedID("cust", "zenith"), Name: "Zenith Hospitality Group", Status: "Active", PlanName: "Pro", MemberSince: "2022-06-01"},
		{ID: seedID("cust", "lakeside"), Name: "Lakeside Stays", Status: "Trial", PlanName: "Basic", MemberSince: "2024-02-14"},
	}
	for _, c := range customerSpecs {
		if err := saas.UpsertCustomer(ctx, c); err != nil {
			return fmt.Errorf("seed customer %s: %w", c.Name, err)
		}
	}
	logSpecs := []repository.SystemLog{
		{ID: seedID("syslog", "1"), Timestamp: Now(), Level: "INFO", Service: "API", Message: "Nightly report run completed"},
		{ID: seedID("syslog", "2"), Timestamp: Now(), Level: "WARN", Service: "DATABASE", Message: "Slow query on bookings list"},
		{ID: seedID("syslog", "3"), Timestamp: Now(), Level: "ERROR", Service: "AUTH", Message: "Token refresh failed for customer lakeside"},
	}
	for _, l := range logSpecs {
		if err := saas.InsertSystemLog(ctx, l); err != nil {
			return fmt.Errorf("seed system log: %w", err)
		}
	}

	return nil
}
