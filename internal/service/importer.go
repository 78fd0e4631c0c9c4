package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/innboard/innboard/internal/database"
	"github.com/innboard/innboard/internal/database/repository"
)

// ErrNoBatch is the structural failure for a missing import batch. Row-level
// problems never produce it; they become Rejections instead.
var ErrNoBatch = errors.New("import batch is nil")

// RawImportRow is one loosely-structured record from an external source.
// CheckIn/CheckOut keep their source shape (string, serial number, native
// date) until the normalizer sees them; everything else arrives as text.
type RawImportRow struct {
	GuestName  string
	GuestEmail string
	GuestPhone string
	RoomName   string
	CheckIn    any
	CheckOut   any
	Status     string
	TotalPrice string
	Source     string
	BookType   string
}

// Rejection records why one row produced no booking.
type Rejection struct {
	Row        int    // 1-based position in the batch
	GuestName  string
	Reason     string
	Suggestion string // closest existing room name, when the room was the problem
}

// ReconcileResult carries the deltas for the caller to merge, plus the
// per-row rejection record.
type ReconcileResult struct {
	NewGuests   []repository.Guest
	NewBookings []repository.Booking
	Rejections  []Rejection
}

// Imported returns the number of bookings produced.
func (r ReconcileResult) Imported() int { return len(r.NewBookings) }

// Rejected returns the number of rows that produced no booking.
func (r ReconcileResult) Rejected() int { return len(r.Rejections) }

// ReconcileRows resolves a batch of raw rows against the guest and room
// registries for prop and returns the new guests and bookings to create.
// Guests are matched by case-insensitive exact name and fabricated when
// absent; the working index is extended as the batch runs, so later rows
// match guests created by earlier rows. Rooms are never fabricated; a row
// naming an unknown room is rejected. Each row fails independently.
//
// A guest is registered before the row's room and dates are checked, so a
// rejected row can still contribute a new guest; re-importing a corrected
// file then reuses that guest instead of duplicating it.
func ReconcileRows(rows []RawImportRow, guests []repository.Guest, rooms []repository.Room, prop repository.Property) (ReconcileResult, error) {
	if rows == nil {
		return ReconcileResult{}, ErrNoBatch
	}

	guestIndex := make(map[string]repository.Guest, len(guests))
	for _, g := range guests {
		key := strings.ToLower(g.Name)
		if _, ok := guestIndex[key]; !ok {
			guestIndex[key] = g
		}
	}
	roomIndex := make(map[string]repository.Room, len(rooms))
	roomNames := make([]string, 0, len(rooms))
	for _, room := range rooms {
		key := strings.ToLower(room.Name)
		if _, ok := roomIndex[key]; !ok {
			roomIndex[key] = room
			roomNames = append(roomNames, room.Name)
		}
	}

	var res ReconcileResult
	for i, row := range rows {
		rowNum := i + 1

		name := strings.TrimSpace(row.GuestName)
		if name == "" {
			res.Rejections = append(res.Rejections, Rejection{Row: rowNum, Reason: "missing guest name"})
			continue
		}

		guest, ok := guestIndex[strings.ToLower(name)]
		if !ok {
			guest = repository.Guest{
				ID:    uuid.NewString(),
				Name:  name,
				Email: strings.TrimSpace(row.GuestEmail),
				Phone: strings.TrimSpace(row.GuestPhone),
			}
			res.NewGuests = append(res.NewGuests, guest)
			guestIndex[strings.ToLower(name)] = guest
		}

		roomName := strings.TrimSpace(row.RoomName)
		if roomName == "" {
			res.Rejections = append(res.Rejections, Rejection{Row: rowNum, GuestName: name, Reason: "missing room name"})
			continue
		}
		room, ok := roomIndex[strings.ToLower(roomName)]
		if !ok {
			res.Rejections = append(res.Rejections, Rejection{
				Row:        rowNum,
				GuestName:  name,
				Reason:     fmt.Sprintf("no room named %q", roomName),
				Suggestion: closestName(roomName, roomNames),
			})
			continue
		}

		checkIn, err := ParseFlexibleDate(row.CheckIn)
		if err != nil {
			res.Rejections = append(res.Rejections, Rejection{Row: rowNum, GuestName: name, Reason: fmt.Sprintf("unparseable check-in %v", row.CheckIn)})
			continue
		}
		checkOut, err := ParseFlexibleDate(row.CheckOut)
		if err != nil {
			res.Rejections = append(res.Rejections, Rejection{Row: rowNum, GuestName: name, Reason: fmt.Sprintf("unparseable check-out %v", row.CheckOut)})
			continue
		}
		ci, co := isoDate(checkIn), isoDate(checkOut)
		if ci >= co {
			res.Rejections = append(res.Rejections, Rejection{Row: rowNum, GuestName: name, Reason: fmt.Sprintf("check-in %s not before check-out %s", ci, co)})
			continue
		}

		status := strings.TrimSpace(row.Status)
		if status == "" {
			status = repository.BookingConfirmed
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row.TotalPrice), 64)
		if err != nil {
			price = 0
		}
		source := strings.TrimSpace(row.Source)
		if source == "" {
			source = "Imported"
		}

		res.NewBookings = append(res.NewBookings, repository.Booking{
			ID:         uuid.NewString(),
			PropertyID: prop.ID,
			RoomID:     room.ID,
			GuestID:    guest.ID,
			CheckIn:    ci,
			CheckOut:   co,
			Status:     status,
			TotalPrice: price,
			Source:     source,
			BookType:   bookTypeFor(prop, row.BookType),
		})
	}
	return res, nil
}

// bookTypeFor applies the ledger rule: only OYO-managed properties honor the
// row's book type, everything else lands in BOOK_1.
func bookTypeFor(prop repository.Property, rowBookType string) string {
	if prop.ManagementType != repository.ManagementOYO {
		return repository.BookTypeOne
	}
	bt := strings.TrimSpace(rowBookType)
	if bt == "" {
		return repository.BookTypeOne
	}
	return bt
}

// closestName returns the candidate nearest to name, or "" when nothing is
// plausibly close.
func closestName(name string, candidates []string) string {
	target := strings.ToLower(name)
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(target, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > 3 {
		return ""
	}
	return best
}

// ImportService runs the reconciliation pipeline against the store: it loads
// the live registries, reconciles the batch, persists the deltas, and leaves
// an audit trail. Per-row rejections go to the log as the diagnostic channel.
type ImportService struct {
	Properties *repository.PropertyRepo
	Rooms      *repository.RoomRepo
	Guests     *repository.GuestRepo
	Bookings   *repository.BookingRepo
	Audit      *repository.AuditRepo
	Log        *zap.Logger
}

// ImportSummary is what the UI reports after a batch completes.
type ImportSummary struct {
	Imported   int
	Rejected   int
	NewGuests  int
	Rejections []Rejection
}

func (s ImportSummary) String() string {
	out := fmt.Sprintf("Successfully imported %d bookings", s.Imported)
	if s.Rejected > 0 {
		out += fmt.Sprintf(", rejected %d rows", s.Rejected)
	}
	return out
}

// ImportBookings reconciles rows against propertyID and persists the result.
func (s *ImportService) ImportBookings(ctx context.Context, propertyID string, rows []RawImportRow) (ImportSummary, error) {
	prop, err := s.Properties.Get(ctx, propertyID)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("load property: %w", err)
	}
	if prop == nil {
		return ImportSummary{}, fmt.Errorf("unknown property %q", propertyID)
	}
	guests, err := s.Guests.List(ctx)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("load guests: %w", err)
	}
	rooms, err := s.Rooms.ListByProperty(ctx, propertyID)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("load rooms: %w", err)
	}

	res, err := ReconcileRows(rows, guests, rooms, *prop)
	if err != nil {
		return ImportSummary{}, err
	}

	for _, rej := range res.Rejections {
		s.Log.Warn("import row rejected",
			zap.Int("row", rej.Row),
			zap.String("guest", rej.GuestName),
			zap.String("reason", rej.Reason),
			zap.String("suggestion", rej.Suggestion))
	}

	if err := s.Guests.InsertBatch(ctx, res.NewGuests); err != nil {
		return ImportSummary{}, fmt.Errorf("persist guests: %w", err)
	}
	if err := s.Bookings.InsertBatch(ctx, res.NewBookings); err != nil {
		return ImportSummary{}, fmt.Errorf("persist bookings: %w", err)
	}
	if s.Audit != nil {
		entry := repository.AuditLog{
			ID:        uuid.NewString(),
			Timestamp: database.Now(),
			Action:    "IMPORT_BOOKINGS",
			Details:   fmt.Sprintf("property=%s imported=%d rejected=%d new_guests=%d", prop.Name, res.Imported(), res.Rejected(), len(res.NewGuests)),
		}
		if err := s.Audit.Insert(ctx, entry); err != nil {
			s.Log.Warn("audit write failed", zap.Error(err))
		}
	}

	s.Log.Info("import complete",
		zap.String("property", prop.Name),
		zap.Int("imported", res.Imported()),
		zap.Int("rejected", res.Rejected()),
		zap.Int("new_guests", len(res.NewGuests)))

	return ImportSummary{
		Imported:   res.Imported(),
		Rejected:   res.Rejected(),
		NewGuests:  len(res.NewGuests),
		Rejections: res.Rejections,
	}, nil
}

// ImportFile reads rows from path (CSV or XLSX by extension) and imports
// them into propertyID.
func (s *ImportService) ImportFile(ctx context.Context, propertyID, path string) (ImportSummary, error) {
	rows, err := ReadRowsFromFile(path)
	if err != nil {
		return ImportSummary{}, err
	}
	return s.ImportBookings(ctx, propertyID, rows)
}
