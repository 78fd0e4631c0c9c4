package repository

import "time"

// Booking lifecycle states, stored as their wire encodings.
const (
	BookingConfirmed  = "CONFIRMED"
	BookingCheckedIn  = "CHECKED_IN"
	BookingCheckedOut = "CHECKED_OUT"
	BookingCancelled  = "CANCELLED"
)

// Room types.
const (
	RoomSingle = "SINGLE"
	RoomDouble = "DOUBLE"
	RoomSuite  = "SUITE"
)

// Housekeeping states.
const (
	HousekeepingClean      = "CLEAN"
	HousekeepingDirty      = "DIRTY"
	HousekeepingInProgress = "IN_PROGRESS"
	HousekeepingInspection = "INSPECTION"
)

// Management types. OYO-managed properties split bookings across two ledgers
// (BOOK_1/BOOK_2); self-managed properties keep everything in BOOK_1.
const (
	ManagementOYO  = "OYO"
	ManagementSelf = "SELF"
)

// Book ledgers.
const (
	BookTypeOne = "BOOK_1"
	BookTypeTwo = "BOOK_2"
)

// Property represents a property row.
type Property struct {
	ID             string
	Name           string
	Location       string
	CustomerID     string
	Phone          string
	ManagementType string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Room represents a room row.
type Room struct {
	ID                 string
	Name               string
	Type               string
	PropertyID         string
	HousekeepingStatus string
	FrontOfficeRemarks *string
	HousekeepingRemark *string
	HousekeeperID      *string
}

// Guest represents a guest row.
type Guest struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// Booking represents a booking row. CheckIn/CheckOut are calendar dates in
// ISO form (2006-01-02) with no time component.
type Booking struct {
	ID         string
	PropertyID string
	RoomID     string
	GuestID    string
	CheckIn    string
	CheckOut   string
	Status     string
	TotalPrice float64
	Source     string
	BookType   string
	Payments   []Payment
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Payment represents a payment recorded against a booking.
type Payment struct {
	BookingID string
	Amount    float64
	ModeID    string
	AccountID string
	Date      string
}

// User represents a staff user row.
type User struct {
	ID   string
	Name string
	Role string
}

// PaymentMode represents a payment mode row.
type PaymentMode struct {
	ID   string
	Name string
}

// PaymentAccount represents a payment account row.
type PaymentAccount struct {
	ID      string
	Name    string
	Details string
}

// Integration represents a third-party integration row.
type Integration struct {
	ID          string
	Name        string
	Category    string
	Description string
	Connected   bool
}

// AuditLog represents an audit trail entry.
type AuditLog struct {
	ID        string
	Timestamp time.Time
	UserID    string
	Action    string
	Details   string
}

// SubscriptionPlan represents a SaaS subscription plan row.
type SubscriptionPlan struct {
	Name          string
	MonthlyRate   float64
	PropertyLimit int
	UserLimit     int
}

// SaaSCustomer represents a platform customer row.
type SaaSCustomer struct {
	ID          string
	Name        string
	Status      string
	PlanName    string
	MemberSince string
}

// SystemLog represents a platform-level log row.
type SystemLog struct {
	ID        string
	Timestamp time.Time
	Level     string
	Service   string
	Message   string
}
