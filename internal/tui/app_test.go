package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/innboard/innboard/internal/config"
	"github.com/innboard/innboard/internal/database/repository"
	"github.com/innboard/innboard/internal/service"
)

func testApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Config{
		UI:     config.UIConfig{CurrencySymbol: "$", Timezone: "UTC", DateFormat: "02 Jan"},
		Import: config.ImportConfig{DefaultPath: "bookings.csv"},
	}
	return New(context.Background(), cfg, zap.NewNop(), Repos{}, Services{}, time.UTC)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewSwitchingKeys(t *testing.T) {
	a := testApp(t)

	cases := []struct {
		key  string
		want appState
	}{
		{"b", viewBookings},
		{"g", viewGuests},
		{"r", viewRooms},
		{"h", viewHousekeeping},
		{"o", viewReports},
		{"p", viewSettings},
		{"s", viewSuperAdmin},
		{"d", viewDashboard},
	}
	for _, tc := range cases {
		model, _ := a.Update(key(tc.key))
		a = model.(*App)
		require.Equal(t, tc.want, a.state, "key %q", tc.key)
	}
}

func TestPropertySwitching(t *testing.T) {
	a := testApp(t)
	model, _ := a.Update(propertiesMsg{
		{ID: "p1", Name: "Sunrise Grand", Location: "Jaipur", ManagementType: repository.ManagementOYO},
		{ID: "p2", Name: "Harbor View Inn", Location: "Kochi", ManagementType: repository.ManagementSelf},
	})
	a = model.(*App)
	require.Equal(t, "p1", a.activeProperty().ID)

	model, _ = a.Update(key("]"))
	a = model.(*App)
	require.Equal(t, "p2", a.activeProperty().ID)

	model, _ = a.Update(key("]"))
	a = model.(*App)
	require.Equal(t, "p1", a.activeProperty().ID) // wraps around

	model, _ = a.Update(key("["))
	a = model.(*App)
	require.Equal(t, "p2", a.activeProperty().ID)
}

func TestCursorClamping(t *testing.T) {
	a := testApp(t)
	a.state = viewGuests
	model, _ := a.Update(guestsMsg{{ID: "g1", Name: "A"}, {ID: "g2", Name: "B"}})
	a = model.(*App)

	model, _ = a.Update(key("k"))
	a = model.(*App)
	require.Equal(t, 0, a.guestCursor) // cannot move above the top

	for i := 0; i < 5; i++ {
		model, _ = a.Update(key("j"))
		a = model.(*App)
	}
	require.Equal(t, 1, a.guestCursor) // pinned to the last row

	// Shrinking the list resets an out-of-range cursor.
	model, _ = a.Update(guestsMsg{})
	a = model.(*App)
	require.Equal(t, 0, a.guestCursor)
}

func TestImportDoneSwitchesToBookings(t *testing.T) {
	a := testApp(t)
	a.state = viewImport

	sum := service.ImportSummary{
		Imported: 2,
		Rejected: 1,
		Rejections: []service.Rejection{
			{Row: 3, GuestName: "Jane Doe", Reason: `no room named "1O1"`, Suggestion: "101"},
		},
	}
	model, cmd := a.Update(importDoneMsg{Summary: sum})
	a = model.(*App)
	require.NotNil(t, cmd)
	require.Equal(t, viewBookings, a.state)
	require.Equal(t, "Successfully imported 2 bookings, rejected 1 rows", a.status)

	a.state = viewImport
	view := a.View()
	require.Contains(t, view, "Successfully imported 2 bookings")
	require.Contains(t, view, `row 3:`)
	require.Contains(t, view, `did you mean "101"?`)
}

func TestRenderViews(t *testing.T) {
	a := testApp(t)
	model, _ := a.Update(propertiesMsg{{ID: "p1", Name: "Sunrise Grand", Location: "Jaipur", ManagementType: repository.ManagementOYO}})
	a = model.(*App)
	model, _ = a.Update(roomsMsg{{ID: "r1", Name: "101", Type: repository.RoomSingle, HousekeepingStatus: repository.HousekeepingDirty}})
	a = model.(*App)
	model, _ = a.Update(guestsMsg{{ID: "g1", Name: "John Smith", Email: "john@example.com"}})
	a = model.(*App)
	model, _ = a.Update(bookingsMsg{{ID: "b1", GuestID: "g1", RoomID: "r1", CheckIn: "2024-03-15", CheckOut: "2024-03-18", Status: repository.BookingConfirmed, TotalPrice: 250}})
	a = model.(*App)

	a.state = viewBookings
	view := a.View()
	require.Contains(t, view, "John Smith")
	require.Contains(t, view, "101")
	require.Contains(t, view, "2024-03-15")

	a.state = viewHousekeeping
	require.Contains(t, a.View(), repository.HousekeepingDirty)

	a.state = viewDashboard
	require.Contains(t, a.View(), "Sunrise Grand")

	a.state = viewSuperAdmin
	model, _ = a.Update(superAdminMsg{
		Customers: []repository.SaaSCustomer{{ID: "c1", Name: "Zenith Hospitality Group", Status: "Active", PlanName: "Pro", MemberSince: "2022-06-01"}},
		Plans:     []repository.SubscriptionPlan{{Name: "Pro", MonthlyRate: 149, PropertyLimit: 5, UserLimit: 25}},
	})
	a = model.(*App)
	view = a.View()
	require.Contains(t, view, "Zenith Hospitality Group")
	require.Contains(t, view, "$149/mo")
}

func TestErrMsgSetsStatus(t *testing.T) {
	a := testApp(t)
	model, _ := a.Update(errMsg{errAs("boom")})
	a = model.(*App)
	require.Equal(t, "error: boom", a.status)
}

type errAs string

func (e errAs) Error() string { return string(e) }

func TestNextHousekeepingStatus(t *testing.T) {
	require.Equal(t, repository.HousekeepingDirty, nextHousekeepingStatus(repository.HousekeepingClean))
	require.Equal(t, repository.HousekeepingInProgress, nextHousekeepingStatus(repository.HousekeepingDirty))
	require.Equal(t, repository.HousekeepingInspection, nextHousekeepingStatus(repository.HousekeepingInProgress))
	require.Equal(t, repository.HousekeepingClean, nextHousekeepingStatus(repository.HousekeepingInspection))
	require.Equal(t, repository.HousekeepingClean, nextHousekeepingStatus("garbage"))
}
