package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/innboard/innboard/internal/config"
	"github.com/innboard/innboard/internal/database"
	"github.com/innboard/innboard/internal/database/repository"
	"github.com/innboard/innboard/internal/service"
)

// App ties together views.
type App struct {
	ctx      context.Context
	repos    Repos
	services Services
	cfg      config.Config
	log      *zap.Logger
	state    appState
	tz       *time.Location

	properties []repository.Property
	activeProp int

	rooms        []repository.Room
	guests       []repository.Guest
	bookings     []repository.Booking
	users        []repository.User
	modes        []repository.PaymentMode
	accounts     []repository.PaymentAccount
	integrations []repository.Integration
	audit        []repository.AuditLog
	customers    []repository.SaaSCustomer
	plans        []repository.SubscriptionPlan
	systemLogs   []repository.SystemLog

	guestName map[string]string // id -> name
	roomName  map[string]string // id -> name
	planRate  map[string]float64

	snapshot *service.DashboardSnapshot
	revenue  []service.RevenuePoint

	bookingCursor int
	guestCursor   int
	roomCursor    int
	hkCursor      int

	modal       modalState
	inputBuffer string
	status      string
	currency    string
	dateFormat  string

	// import flow
	importPath string
	lastImport *service.ImportSummary
}

type Repos struct {
	Properties      *repository.PropertyRepo
	Rooms           *repository.RoomRepo
	Guests          *repository.GuestRepo
	Bookings        *repository.BookingRepo
	Users           *repository.UserRepo
	PaymentModes    *repository.PaymentModeRepo
	PaymentAccounts *repository.PaymentAccountRepo
	Integrations    *repository.IntegrationRepo
	Audit           *repository.AuditRepo
	SaaS            *repository.SaaSRepo
}

type Services struct {
	Importer *service.ImportService
	Reports  *service.ReportsService
}

type appState string

const (
	viewDashboard    appState = "dashboard"
	viewBookings     appState = "bookings"
	viewGuests       appState = "guests"
	viewRooms        appState = "rooms"
	viewHousekeeping appState = "housekeeping"
	viewReports      appState = "reports"
	viewImport       appState = "import"
	viewSettings     appState = "settings"
	viewSuperAdmin   appState = "superadmin"
)

type modalState string

const (
	modalNone           modalState = ""
	modalBulkRooms      modalState = "bulkRooms"
	modalCurrency       modalState = "currency"
	modalConfirmDelProp modalState = "confirmDeleteProperty"
)

func New(ctx context.Context, cfg config.Config, log *zap.Logger, repos Repos, services Services, tz *time.Location) *App {
	if tz == nil {
		tz = time.Local
	}
	return &App{
		ctx:        ctx,
		repos:      repos,
		services:   services,
		cfg:        cfg,
		log:        log,
		state:      viewDashboard,
		tz:         tz,
		importPath: cfg.Import.DefaultPath,
		currency:   cfg.UI.CurrencySymbol,
		dateFormat: cfg.UI.DateFormat,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadProperties(), a.loadGuests(), a.loadUsers(), a.loadPaymentConfig(), a.loadIntegrations(), a.loadSuperAdmin())
}

func (a *App) activeProperty() *repository.Property {
	if len(a.properties) == 0 {
		return nil
	}
	if a.activeProp >= len(a.properties) {
		a.activeProp = 0
	}
	return &a.properties[a.activeProp]
}

func (a *App) today() string {
	return time.Now().In(a.tz).Format("2006-01-02")
}

// loaders

func (a *App) loadProperties() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repos.Properties.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return propertiesMsg(list)
	}
}

func (a *App) loadPropertyData() tea.Cmd {
	prop := a.activeProperty()
	if prop == nil {
		return nil
	}
	id := prop.ID
	return tea.Batch(
		func() tea.Msg {
			rooms, err := a.repos.Rooms.ListByProperty(a.ctx, id)
			if err != nil {
				return errMsg{err}
			}
			return roomsMsg(rooms)
		},
		func() tea.Msg {
			bookings, err := a.repos.Bookings.List(a.ctx, repository.BookingFilters{PropertyID: id})
			if err != nil {
				return errMsg{err}
			}
			return bookingsMsg(bookings)
		},
		a.loadReports(),
	)
}

func (a *App) loadGuests() tea.Cmd {
	return func() tea.Msg {
		guests, err := a.repos.Guests.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return guestsMsg(guests)
	}
}

func (a *App) loadUsers() tea.Cmd {
	return func() tea.Msg {
		users, err := a.repos.Users.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return usersMsg(users)
	}
}

func (a *App) loadPaymentConfig() tea.Cmd {
	return func() tea.Msg {
		modes, err := a.repos.PaymentModes.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		accounts, err := a.repos.PaymentAccounts.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return paymentConfigMsg{Modes: modes, Accounts: accounts}
	}
}

func (a *App) loadIntegrations() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repos.Integrations.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return integrationsMsg(list)
	}
}

func (a *App) loadAudit() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repos.Audit.Recent(a.ctx, 20)
		if err != nil {
			return errMsg{err}
		}
		return auditMsg(list)
	}
}

func (a *App) loadSuperAdmin() tea.Cmd {
	return func() tea.Msg {
		customers, err := a.repos.SaaS.ListCustomers(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		plans, err := a.repos.SaaS.ListPlans(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		logs, err := a.repos.SaaS.RecentSystemLogs(a.ctx, 20)
		if err != nil {
			return errMsg{err}
		}
		return superAdminMsg{Customers: customers, Plans: plans, Logs: logs}
	}
}

func (a *App) loadReports() tea.Cmd {
	prop := a.activeProperty()
	if prop == nil {
		return nil
	}
	id, today := prop.ID, a.today()
	return func() tea.Msg {
		snap, err := a.services.Reports.Snapshot(a.ctx, id, today)
		if err != nil {
			return errMsg{err}
		}
		rev, err := a.services.Reports.RevenueByMonth(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return reportsMsg{Snapshot: snap, Revenue: rev}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		if a.state == viewImport {
			return a.handleImportKey(m)
		}
		return a.handleKey(m)

	case propertiesMsg:
		a.properties = []repository.Property(m)
		if a.activeProp >= len(a.properties) {
			a.activeProp = 0
		}
		return a, a.loadPropertyData()
	case roomsMsg:
		a.rooms = []repository.Room(m)
		a.roomName = make(map[string]string, len(a.rooms))
		for _, r := range a.rooms {
			a.roomName[r.ID] = r.Name
		}
		if a.roomCursor >= len(a.rooms) {
			a.roomCursor = 0
		}
		if a.hkCursor >= len(a.rooms) {
			a.hkCursor = 0
		}
	case bookingsMsg:
		a.bookings = []repository.Booking(m)
		if a.bookingCursor >= len(a.bookings) {
			a.bookingCursor = 0
		}
	case guestsMsg:
		a.guests = []repository.Guest(m)
		a.guestName = make(map[string]string, len(a.guests))
		for _, g := range a.guests {
			a.guestName[g.ID] = g.Name
		}
		if a.guestCursor >= len(a.guests) {
			a.guestCursor = 0
		}
	case usersMsg:
		a.users = []repository.User(m)
	case paymentConfigMsg:
		a.modes = m.Modes
		a.accounts = m.Accounts
	case integrationsMsg:
		a.integrations = []repository.Integration(m)
	case auditMsg:
		a.audit = []repository.AuditLog(m)
	case superAdminMsg:
		a.customers = m.Customers
		a.plans = m.Plans
		a.systemLogs = m.Logs
		a.planRate = make(map[string]float64, len(a.plans))
		for _, p := range a.plans {
			a.planRate[p.Name] = p.MonthlyRate
		}
	case reportsMsg:
		snap := m.Snapshot
		a.snapshot = &snap
		a.revenue = m.Revenue
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.log.Error("ui operation failed", zap.Error(m.error))
		a.status = "error: " + m.Error()
	case importDoneMsg:
		summary := m.Summary
		a.lastImport = &summary
		a.status = summary.String()
		a.state = viewBookings
		return a, tea.Batch(a.loadPropertyData(), a.loadGuests(), a.loadAudit())
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "d":
		a.state = viewDashboard
	case "b":
		a.state = viewBookings
	case "g":
		a.state = viewGuests
	case "r":
		a.state = viewRooms
	case "h":
		a.state = viewHousekeeping
	case "o":
		a.state = viewReports
	case "i":
		a.state = viewImport
		a.status = ""
	case "p":
		a.state = viewSettings
		a.status = ""
		return a, a.loadAudit()
	case "s":
		a.state = viewSuperAdmin
		return a, a.loadSuperAdmin()
	case "]":
		if len(a.properties) > 1 {
			a.activeProp = (a.activeProp + 1) % len(a.properties)
			return a, a.loadPropertyData()
		}
	case "[":
		if len(a.properties) > 1 {
			a.activeProp = (a.activeProp - 1 + len(a.properties)) % len(a.properties)
			return a, a.loadPropertyData()
		}
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "n":
		if a.state == viewRooms {
			a.modal = modalBulkRooms
			a.inputBuffer = ""
		}
	case "c":
		if a.state == viewBookings && len(a.bookings) > 0 {
			b := a.bookings[a.bookingCursor]
			return a, a.setBookingStatusCmd(b.ID, repository.BookingCancelled)
		}
		if a.state == viewSettings {
			a.modal = modalCurrency
			a.inputBuffer = a.currency
		}
	case "e":
		if a.state == viewBookings && len(a.bookings) > 0 {
			b := a.bookings[a.bookingCursor]
			return a, a.setBookingStatusCmd(b.ID, repository.BookingCheckedIn)
		}
	case "x":
		switch a.state {
		case viewBookings:
			if len(a.bookings) > 0 {
				return a, a.deleteBookingCmd(a.bookings[a.bookingCursor].ID)
			}
		case viewGuests:
			if len(a.guests) > 0 {
				return a, a.deleteGuestCmd(a.guests[a.guestCursor].ID)
			}
		case viewRooms:
			if len(a.rooms) > 0 {
				return a, a.deleteRoomCmd(a.rooms[a.roomCursor].ID)
			}
		}
	case "X":
		if a.state == viewDashboard && len(a.properties) > 0 {
			a.modal = modalConfirmDelProp
		}
	case "enter":
		if a.state == viewHousekeeping && len(a.rooms) > 0 {
			room := a.rooms[a.hkCursor]
			return a, a.cycleHousekeepingCmd(room)
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	clamp := func(cursor, n int) int {
		c := cursor + delta
		if c < 0 {
			c = 0
		}
		if n > 0 && c > n-1 {
			c = n - 1
		}
		return c
	}
	switch a.state {
	case viewBookings:
		a.bookingCursor = clamp(a.bookingCursor, len(a.bookings))
	case viewGuests:
		a.guestCursor = clamp(a.guestCursor, len(a.guests))
	case viewRooms:
		a.roomCursor = clamp(a.roomCursor, len(a.rooms))
	case viewHousekeeping:
		a.hkCursor = clamp(a.hkCursor, len(a.rooms))
	}
}

func (a *App) handleImportKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.state = viewDashboard
		return a, nil
	}
	switch m.Type {
	case tea.KeyEnter:
		path := strings.TrimSpace(a.importPath)
		if path == "" {
			a.status = "enter a file path"
			return a, nil
		}
		a.status = "importing..."
		return a, a.importCmd(path)
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.importPath) > 0 {
			a.importPath = a.importPath[:len(a.importPath)-1]
		}
	case tea.KeySpace:
		a.importPath += " "
	case tea.KeyRunes:
		a.importPath += string(m.Runes)
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirmDelProp:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			prop := a.activeProperty()
			if prop == nil {
				return a, nil
			}
			return a, a.deletePropertyCmd(prop.ID)
		case "n", "N", "esc":
			a.modal = modalNone
		}
		return a, nil
	case modalBulkRooms, modalCurrency:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.inputBuffer = ""
		case tea.KeyEnter:
			text := strings.TrimSpace(a.inputBuffer)
			mode := a.modal
			a.modal = modalNone
			a.inputBuffer = ""
			if text == "" {
				a.status = "enter a value"
				return a, nil
			}
			if mode == modalBulkRooms {
				return a, a.bulkRoomsCmd(text)
			}
			return a, a.saveCurrencyCmd(text)
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			if len(a.inputBuffer) > 0 {
				a.inputBuffer = a.inputBuffer[:len(a.inputBuffer)-1]
			}
		case tea.KeySpace:
			a.inputBuffer += " "
		case tea.KeyRunes:
			a.inputBuffer += string(m.Runes)
		}
	}
	return a, nil
}

// commands

func (a *App) importCmd(path string) tea.Cmd {
	prop := a.activeProperty()
	if prop == nil {
		return func() tea.Msg { return statusMsg("no active property") }
	}
	id := prop.ID
	return func() tea.Msg {
		summary, err := a.services.Importer.ImportFile(a.ctx, id, path)
		if err != nil {
			return errMsg{err}
		}
		return importDoneMsg{Summary: summary}
	}
}

func (a *App) setBookingStatusCmd(id, status string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Bookings.UpdateStatus(a.ctx, id, status); err != nil {
				return errMsg{err}
			}
			return statusMsg("booking " + strings.ToLower(status))
		},
		a.loadPropertyData(),
	)
}

func (a *App) deleteBookingCmd(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Bookings.Delete(a.ctx, id); err != nil {
				return errMsg{err}
			}
			a.recordAudit("DELETE_BOOKING", "booking="+id)
			return statusMsg("booking deleted")
		},
		a.loadPropertyData(),
	)
}

func (a *App) deleteGuestCmd(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Guests.Delete(a.ctx, id); err != nil {
				return errMsg{err}
			}
			a.recordAudit("DELETE_GUEST", "guest="+id)
			return statusMsg("guest and their bookings removed")
		},
		a.loadGuests(),
		a.loadPropertyData(),
	)
}

func (a *App) deleteRoomCmd(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Rooms.Delete(a.ctx, id); err != nil {
				return errMsg{err}
			}
			a.recordAudit("DELETE_ROOM", "room="+id)
			return statusMsg("room and its bookings removed")
		},
		a.loadPropertyData(),
	)
}

func (a *App) deletePropertyCmd(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Properties.Delete(a.ctx, id); err != nil {
				return errMsg{err}
			}
			a.recordAudit("DELETE_PROPERTY", "property="+id)
			return statusMsg("property removed")
		},
		a.loadProperties(),
	)
}

// recordAudit writes a trail entry for a destructive operation. Audit
// failures are logged, never surfaced.
func (a *App) recordAudit(action, details string) {
	if a.repos.Audit == nil {
		return
	}
	entry := repository.AuditLog{
		ID:        uuid.NewString(),
		Timestamp: database.Now(),
		Action:    action,
		Details:   details,
	}
	if err := a.repos.Audit.Insert(a.ctx, entry); err != nil {
		a.log.Warn("audit write failed", zap.Error(err))
	}
}

func (a *App) cycleHousekeepingCmd(room repository.Room) tea.Cmd {
	next := nextHousekeepingStatus(room.HousekeepingStatus)
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Rooms.UpdateHousekeeping(a.ctx, room.ID, next, room.HousekeeperID); err != nil {
				return errMsg{err}
			}
			return statusMsg(fmt.Sprintf("room %s -> %s", room.Name, next))
		},
		a.loadPropertyData(),
	)
}

// bulkRoomsCmd parses "prefix start end type", e.g. "3 01 10 DOUBLE" or
// "1,1,5,SINGLE".
func (a *App) bulkRoomsCmd(input string) tea.Cmd {
	prop := a.activeProperty()
	if prop == nil {
		return func() tea.Msg { return statusMsg("no active property") }
	}
	parts := strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ' ' })
	if len(parts) != 4 {
		return func() tea.Msg { return statusMsg("format: prefix start end type") }
	}
	start, err1 := strconv.Atoi(parts[1])
	end, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return func() tea.Msg { return statusMsg("start and end must be numbers") }
	}
	prefix, roomType := parts[0], strings.ToUpper(parts[3])
	id := prop.ID
	return tea.Batch(
		func() tea.Msg {
			created, err := a.repos.Rooms.BulkCreate(a.ctx, id, prefix, start, end, roomType)
			if err != nil {
				return errMsg{err}
			}
			return statusMsg(fmt.Sprintf("created %d rooms", len(created)))
		},
		a.loadPropertyData(),
	)
}

func (a *App) saveCurrencyCmd(symbol string) tea.Cmd {
	return func() tea.Msg {
		a.currency = symbol
		cfg := a.cfg
		cfg.UI.CurrencySymbol = symbol
		if err := config.Save(cfg); err != nil {
			return errMsg{err}
		}
		a.cfg = cfg
		return statusMsg("currency saved")
	}
}

func nextHousekeepingStatus(current string) string {
	switch current {
	case repository.HousekeepingClean:
		return repository.HousekeepingDirty
	case repository.HousekeepingDirty:
		return repository.HousekeepingInProgress
	case repository.HousekeepingInProgress:
		return repository.HousekeepingInspection
	default:
		return repository.HousekeepingClean
	}
}

// messages

type propertiesMsg []repository.Property

type roomsMsg []repository.Room

type bookingsMsg []repository.Booking

type guestsMsg []repository.Guest

type usersMsg []repository.User

type paymentConfigMsg struct {
	Modes    []repository.PaymentMode
	Accounts []repository.PaymentAccount
}

type integrationsMsg []repository.Integration

type auditMsg []repository.AuditLog

type superAdminMsg struct {
	Customers []repository.SaaSCustomer
	Plans     []repository.SubscriptionPlan
	Logs      []repository.SystemLog
}

type reportsMsg struct {
	Snapshot service.DashboardSnapshot
	Revenue  []service.RevenuePoint
}

type statusMsg string

type errMsg struct{ error }

type importDoneMsg struct {
	Summary service.ImportSummary
}
