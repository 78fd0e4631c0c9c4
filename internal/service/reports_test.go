package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/innboard/innboard/internal/database/repository"
)

func TestReportsService(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	props := repository.NewPropertyRepo(db)
	rooms := repository.NewRoomRepo(db)
	guests := repository.NewGuestRepo(db)
	bookings := repository.NewBookingRepo(db)

	require.NoError(t, props.Upsert(ctx, repository.Property{ID: "p1", Name: "Sunrise Grand", ManagementType: repository.ManagementSelf}))
	for _, id := range []string{"r1", "r2", "r3", "r4"} {
		require.NoError(t, rooms.Upsert(ctx, repository.Room{ID: id, Name: id, Type: repository.RoomSingle, PropertyID: "p1", HousekeepingStatus: repository.HousekeepingClean}))
	}
	require.NoError(t, guests.Upsert(ctx, repository.Guest{ID: "g1", Name: "John Smith"}))

	seedBookings := []repository.Booking{
		{ID: "b1", PropertyID: "p1", RoomID: "r1", GuestID: "g1", CheckIn: "2024-03-15", CheckOut: "2024-03-18", Status: repository.BookingConfirmed, TotalPrice: 250, Source: "Direct", BookType: repository.BookTypeOne},
		{ID: "b2", PropertyID: "p1", RoomID: "r2", GuestID: "g1", CheckIn: "2024-03-15", CheckOut: "2024-03-16", Status: repository.BookingCheckedIn, TotalPrice: 100, Source: "Direct", BookType: repository.BookTypeOne},
		{ID: "b3", PropertyID: "p1", RoomID: "r3", GuestID: "g1", CheckIn: "2024-03-10", CheckOut: "2024-03-15", Status: repository.BookingConfirmed, TotalPrice: 400, Source: "Direct", BookType: repository.BookTypeOne},
		{ID: "b4", PropertyID: "p1", RoomID: "r4", GuestID: "g1", CheckIn: "2024-03-15", CheckOut: "2024-03-17", Status: repository.BookingCancelled, TotalPrice: 999, Source: "Direct", BookType: repository.BookTypeOne},
		{ID: "b5", PropertyID: "p1", RoomID: "r1", GuestID: "g1", CheckIn: "2024-04-02", CheckOut: "2024-04-05", Status: repository.BookingConfirmed, TotalPrice: 300, Source: "Direct", BookType: repository.BookTypeOne},
	}
	require.NoError(t, bookings.InsertBatch(ctx, seedBookings))

	svc := &ReportsService{DB: db}

	t.Run("revenue by month", func(t *testing.T) {
		points, err := svc.RevenueByMonth(ctx, "p1")
		require.NoError(t, err)
		require.Len(t, points, 2)

		// Cancelled b4 contributes to neither month.
		require.Equal(t, "2024-03", points[0].Month)
		require.Equal(t, 750.0, points[0].Revenue)
		require.Equal(t, 3, points[0].Bookings)
		require.Equal(t, "2024-04", points[1].Month)
		require.Equal(t, 300.0, points[1].Revenue)
	})

	t.Run("occupancy", func(t *testing.T) {
		// On 2024-03-15: b1 and b2 span it, b3 checks out that day (not
		// occupied), b4 is cancelled. 2 of 4 rooms.
		occ, err := svc.OccupancyOn(ctx, "p1", "2024-03-15")
		require.NoError(t, err)
		require.InDelta(t, 0.5, occ, 1e-9)

		occ, err = svc.OccupancyOn(ctx, "p1", "2024-06-01")
		require.NoError(t, err)
		require.Zero(t, occ)

		// Property with no rooms reports zero rather than dividing by zero.
		require.NoError(t, props.Upsert(ctx, repository.Property{ID: "p2", Name: "Empty", ManagementType: repository.ManagementSelf}))
		occ, err = svc.OccupancyOn(ctx, "p2", "2024-03-15")
		require.NoError(t, err)
		require.Zero(t, occ)
	})

	t.Run("snapshot", func(t *testing.T) {
		snap, err := svc.Snapshot(ctx, "p1", "2024-03-15")
		require.NoError(t, err)
		require.Equal(t, 4, snap.Rooms)
		require.Equal(t, 2, snap.Occupied)
		require.Equal(t, 2, snap.Arrivals)   // b1 and b2; cancelled b4 excluded
		require.Equal(t, 1, snap.Departures) // b3
		require.Equal(t, 750.0, snap.MonthRevenue)
	})
}
