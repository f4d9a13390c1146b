package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olimjons/clinicdesk/pkg/client"
	"github.com/olimjons/clinicdesk/pkg/domain"
)

type dashboardLoadedMsg struct {
	appointments []domain.Appointment
	err          error
}

// menuEntry is one numbered navigation item on a dashboard.
type menuEntry struct {
	key   string
	label string
	route string
}

// roleMenus lists each role's screens, in the order the web app's sidebar
// shows them.
var roleMenus = map[domain.Role][]menuEntry{
	domain.RoleAdmin: {
		{"1", "Patients", routeAdminPatients},
		{"2", "Appointments", routeAdminAppointments},
		{"3", "Services", routeAdminServices},
		{"4", "Treatments", routeAdminTreatments},
		{"5", "Staff", routeAdminUsers},
	},
	domain.RoleDoctor: {
		{"1", "Patients", routeDoctorPatients},
		{"2", "Appointments", routeDoctorAppointments},
		{"3", "Treatments", routeDoctorTreatments},
	},
	domain.RoleReception: {
		{"1", "Patients", routeReceptionPatients},
		{"2", "Appointments", routeReceptionAppointments},
	},
}

type dashboardModel struct {
	client       *client.Client
	role         domain.Role
	appointments []domain.Appointment
	loading      bool
	err          string
	width        int
	height       int
}

func newDashboardModel(c *client.Client, role domain.Role) dashboardModel {
	return dashboardModel{client: c, role: role, loading: true}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m dashboardModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		appts, err := c.ListAppointments(context.Background(), today(), "")
		return dashboardLoadedMsg{appointments: appts, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case dashboardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if client.IsAuthError(msg.err) {
				return m, authExpired(msg.err)
			}
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.appointments = msg.appointments
		return m, nil

	case tea.KeyMsg:
		for _, entry := range roleMenus[m.role] {
			if msg.String() == entry.key {
				return m, navigate(entry.route)
			}
		}
		if msg.String() == "r" {
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render("Today") + "  " + metaStyle.Render(today()) + "\n")

	switch {
	case m.loading:
		sb.WriteString(" " + dimStyle.Render("loading...") + "\n")
	case m.err != "":
		sb.WriteString(" " + errorStyle.Render(m.err) + "\n")
	default:
		var done, cancelled int
		for _, a := range m.appointments {
			switch a.Status {
			case domain.AppointmentCompleted:
				done++
			case domain.AppointmentCancelled:
				cancelled++
			}
		}
		sb.WriteString(fmt.Sprintf(" %s appointments   %s done   %s cancelled\n",
			accentStyle.Render(fmt.Sprintf("%d", len(m.appointments))),
			okStyle.Render(fmt.Sprintf("%d", done)),
			errorStyle.Render(fmt.Sprintf("%d", cancelled))))
	}

	sb.WriteString("\n")
	for _, entry := range roleMenus[m.role] {
		sb.WriteString("  " + accentStyle.Render(entry.key) + " " + normalStyle.Render(entry.label) + "\n")
	}
	return sb.String()
}

func (m dashboardModel) helpKeys() string {
	n := len(roleMenus[m.role])
	return helpEntry(fmt.Sprintf("1-%d", n), "open") + "  " + helpEntry("r", "reload") + "  " + helpEntry("ctrl+l", "log out") + "  " + helpEntry("q", "quit")
}
