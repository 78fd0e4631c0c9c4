package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

const navHelp = "[d] Dashboard  [b] Bookings  [g] Guests  [r] Rooms  [h] Housekeeping  [o] Reports  [i] Import  [p] Settings  [s] Super Admin  [ ] / ] switch property  [q] Quit"

func (a *App) View() string {
	var body string
	switch a.state {
	case viewBookings:
		body = a.renderBookings()
	case viewGuests:
		body = a.renderGuests()
	case viewRooms:
		body = a.renderRooms()
	case viewHousekeeping:
		body = a.renderHousekeeping()
	case viewReports:
		body = a.renderReports()
	case viewImport:
		body = a.renderImport()
	case viewSettings:
		body = a.renderSettings()
	case viewSuperAdmin:
		body = a.renderSuperAdmin()
	default:
		body = a.renderDashboard()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return body
}

func (a *App) header(view string) string {
	prop := a.activeProperty()
	name := "(no property)"
	if prop != nil {
		name = fmt.Sprintf("%s | %s (%s)", prop.Name, prop.Location, prop.ManagementType)
	}
	return titleStyle.Render(view) + "  " + dimStyle.Render(name)
}

func (a *App) footer(extra string) string {
	out := "\n" + extra
	if extra != "" {
		out += "\n"
	}
	out += dimStyle.Render(navHelp)
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderDashboard() string {
	out := a.header("Dashboard") + "\n"
	if a.snapshot != nil {
		s := a.snapshot
		occupancy := 0.0
		if s.Rooms > 0 {
			occupancy = float64(s.Occupied) / float64(s.Rooms) * 100
		}
		out += fmt.Sprintf("Rooms: %d  Occupied: %d (%.0f%%)  Arrivals today: %d  Departures today: %d\n",
			s.Rooms, s.Occupied, occupancy, s.Arrivals, s.Departures)
		out += fmt.Sprintf("Revenue this month: %s%.2f\n", a.currency, s.MonthRevenue)
	} else {
		out += "loading...\n"
	}
	out += fmt.Sprintf("Guests on file: %d  Bookings: %d\n", len(a.guests), len(a.bookings))
	return out + a.footer("[X] Delete property")
}

func (a *App) renderBookings() string {
	out := a.header("Bookings") + "\n"
	if len(a.bookings) == 0 {
		out += "No bookings for this property.\n"
	}
	for i, b := range a.bookings {
		marker := " "
		if i == a.bookingCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-20s  %-6s  %s → %s  %-11s  %s%8.2f  %s\n",
			marker, a.guestLabel(b.GuestID), a.roomLabel(b.RoomID), b.CheckIn, b.CheckOut,
			b.Status, a.currency, b.TotalPrice, b.Source)
	}
	return out + a.footer("[e] Check in  [c] Cancel  [x] Delete")
}

func (a *App) renderGuests() string {
	out := a.header("Guests") + "\n"
	for i, g := range a.guests {
		marker := " "
		if i == a.guestCursor {
			marker = "▶"
		}
		email := g.Email
		if email == "" {
			email = "-"
		}
		phone := g.Phone
		if phone == "" {
			phone = "-"
		}
		out += fmt.Sprintf("%s %-24s  %-30s  %s\n", marker, g.Name, email, phone)
	}
	return out + a.footer("[x] Delete guest (cancels their bookings)")
}

func (a *App) renderRooms() string {
	out := a.header("Rooms") + "\n"
	for i, r := range a.rooms {
		marker := " "
		if i == a.roomCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-8s  %-7s  %s\n", marker, r.Name, r.Type, r.HousekeepingStatus)
	}
	return out + a.footer("[n] Bulk create  [x] Delete room (cancels its bookings)")
}

func (a *App) renderHousekeeping() string {
	out := a.header("Housekeeping") + "\n"
	for i, r := range a.rooms {
		marker := " "
		if i == a.hkCursor {
			marker = "▶"
		}
		remarks := ""
		if r.HousekeepingRemark != nil && *r.HousekeepingRemark != "" {
			remarks = "  HK: " + *r.HousekeepingRemark
		}
		if r.FrontOfficeRemarks != nil && *r.FrontOfficeRemarks != "" {
			remarks += "  FO: " + *r.FrontOfficeRemarks
		}
		out += fmt.Sprintf("%s %-8s  %-12s%s\n", marker, r.Name, r.HousekeepingStatus, remarks)
	}
	return out + a.footer("[enter] Advance status")
}

func (a *App) renderReports() string {
	out := a.header("Reports") + "\n"
	if a.snapshot != nil && a.snapshot.Rooms > 0 {
		out += fmt.Sprintf("Occupancy today: %.0f%%\n", float64(a.snapshot.Occupied)/float64(a.snapshot.Rooms)*100)
	}
	out += "Revenue by month:\n"
	if len(a.revenue) == 0 {
		out += "  (no bookings)\n"
	}
	for _, p := range a.revenue {
		out += fmt.Sprintf("  %s  %s%10.2f  (%d bookings)\n", p.Month, a.currency, p.Revenue, p.Bookings)
	}
	return out + a.footer("")
}

func (a *App) renderImport() string {
	out := a.header("Import Bookings") + "\n"
	out += fmt.Sprintf("File: %s\n", a.importPath)
	out += "Type a path to a CSV or XLSX export and press Enter.\n[enter] Import  [esc] Back\n"
	if a.lastImport != nil {
		out += "\n" + a.lastImport.String() + "\n"
		for _, rej := range a.lastImport.Rejections {
			line := fmt.Sprintf("  row %d: %s", rej.Row, rej.Reason)
			if rej.Suggestion != "" {
				line += fmt.Sprintf(" (did you mean %q?)", rej.Suggestion)
			}
			out += line + "\n"
		}
	}
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderSettings() string {
	out := a.header("Settings") + "\n"
	out += fmt.Sprintf("Currency: %s   Timezone: %s   Date format: %s\n", a.currency, a.cfg.UI.Timezone, a.dateFormat)
	out += "\nUsers:\n"
	for _, u := range a.users {
		out += fmt.Sprintf("  %-24s %s\n", u.Name, u.Role)
	}
	out += "\nPayment modes: "
	var names []string
	for _, m := range a.modes {
		names = append(names, m.Name)
	}
	out += strings.Join(names, ", ") + "\n"
	out += "Payment accounts:\n"
	for _, acct := range a.accounts {
		out += fmt.Sprintf("  %-20s %s\n", acct.Name, acct.Details)
	}
	out += "\nIntegrations:\n"
	for _, in := range a.integrations {
		state := "not connected"
		if in.Connected {
			state = "connected"
		}
		out += fmt.Sprintf("  %-16s %-18s %s\n", in.Name, in.Category, state)
	}
	out += "\nRecent activity:\n"
	if len(a.audit) == 0 {
		out += "  (none)\n"
	}
	for _, e := range a.audit {
		out += fmt.Sprintf("  %s  %-16s %s\n", e.Timestamp.In(a.tz).Format("02 Jan 15:04"), e.Action, e.Details)
	}
	return out + a.footer("[c] Edit currency")
}

func (a *App) renderSuperAdmin() string {
	out := titleStyle.Render("Super Admin") + "\n"
	out += "Customers:\n"
	for _, c := range a.customers {
		rate := a.planRate[c.PlanName]
		out += fmt.Sprintf("  %-28s %-10s %-11s %s%.0f/mo  since %s\n", c.Name, c.Status, c.PlanName, a.currency, rate, c.MemberSince)
	}
	out += "\nPlans:\n"
	for _, p := range a.plans {
		out += fmt.Sprintf("  %-11s %s%.0f/mo  %d properties, %d users\n", p.Name, a.currency, p.MonthlyRate, p.PropertyLimit, p.UserLimit)
	}
	out += "\nSystem logs:\n"
	for _, l := range a.systemLogs {
		out += fmt.Sprintf("  %s  %-5s %-9s %s\n", l.Timestamp.In(a.tz).Format("02 Jan 15:04"), l.Level, l.Service, l.Message)
	}
	return out + a.footer("")
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalBulkRooms:
		return titleStyle.Render("Bulk create rooms") + fmt.Sprintf("\nprefix start end type (e.g. \"1 01 10 DOUBLE\")\n%s\n[enter] Create  [esc] Cancel", a.inputBuffer)
	case modalCurrency:
		return titleStyle.Render("Currency symbol") + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalConfirmDelProp:
		prop := a.activeProperty()
		name := ""
		if prop != nil {
			name = prop.Name
		}
		return titleStyle.Render("Delete property?") + fmt.Sprintf("\n%s and all its rooms and bookings will be removed.\n[y] Yes  [n] No", name)
	default:
		return ""
	}
}

func (a *App) guestLabel(id string) string {
	if name, ok := a.guestName[id]; ok && name != "" {
		return name
	}
	return id
}

func (a *App) roomLabel(id string) string {
	if name, ok := a.roomName[id]; ok && name != "" {
		return name
	}
	return id
}
