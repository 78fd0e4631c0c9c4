package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/innboard/innboard/internal/database"
	"github.com/innboard/innboard/internal/database/repository"
)

func TestMigrateAndSeed(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	// A second run is a no-op, not an error.
	require.NoError(t, database.Migrate(db))

	require.NoError(t, database.Seed(ctx, db))

	props, err := repository.NewPropertyRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, props, 2)

	// One OYO-managed and one self-managed property, for the two book-type
	// code paths.
	byMgmt := map[string]int{}
	roomRepo := repository.NewRoomRepo(db)
	totalRooms := 0
	for _, p := range props {
		byMgmt[p.ManagementType]++
		rooms, err := roomRepo.ListByProperty(ctx, p.ID)
		require.NoError(t, err)
		totalRooms += len(rooms)
	}
	require.Equal(t, map[string]int{repository.ManagementOYO: 1, repository.ManagementSelf: 1}, byMgmt)
	require.Equal(t, 8, totalRooms)

	guests, err := repository.NewGuestRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, guests, 3)

	bookings, err := repository.NewBookingRepo(db).List(ctx, repository.BookingFilters{})
	require.NoError(t, err)
	require.Len(t, bookings, 3)

	users, err := repository.NewUserRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	plans, err := repository.NewSaaSRepo(db).ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)

	// Re-seeding an already-populated database changes nothing.
	require.NoError(t, database.Seed(ctx, db))
	guests, err = repository.NewGuestRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, guests, 3)
}
