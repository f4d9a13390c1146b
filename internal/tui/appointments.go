package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olimjons/clinicdesk/pkg/client"
	"github.com/olimjons/clinicdesk/pkg/domain"
)

type appointmentsLoadedMsg struct {
	appointments []domain.Appointment
	err          error
}

type appointmentUpdatedMsg struct {
	id  int64
	err error
}

type appointmentsModel struct {
	client       *client.Client
	date         string
	appointments []domain.Appointment
	cursor       int
	loading      bool
	err          string
	flash        string
	width        int
	height       int
}

func newAppointmentsModel(c *client.Client) appointmentsModel {
	return appointmentsModel{client: c, date: today(), loading: true}
}

func (m appointmentsModel) Init() tea.Cmd {
	return m.load()
}

func (m appointmentsModel) load() tea.Cmd {
	c := m.client
	date := m.date
	return func() tea.Msg {
		appts, err := c.ListAppointments(context.Background(), date, "")
		return appointmentsLoadedMsg{appointments: appts, err: err}
	}
}

func (m appointmentsModel) setStatus(id int64, status string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return appointmentUpdatedMsg{id: id, err: c.UpdateAppointmentStatus(context.Background(), id, status)}
	}
}

func (m appointmentsModel) Update(msg tea.Msg) (appointmentsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case appointmentsLoadedMsg:
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
		if m.cursor >= len(m.appointments) {
			m.cursor = 0
		}
		return m, nil

	case appointmentUpdatedMsg:
		if msg.err != nil {
			if client.IsAuthError(msg.err) {
				return m, authExpired(msg.err)
			}
			m.err = msg.err.Error()
			return m, nil
		}
		m.flash = "status updated"
		return m, m.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.appointments)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "d":
			if len(m.appointments) > 0 {
				return m, m.setStatus(m.appointments[m.cursor].ID, domain.AppointmentCompleted)
			}
		case "z":
			if len(m.appointments) > 0 {
				return m, m.setStatus(m.appointments[m.cursor].ID, domain.AppointmentCancelled)
			}
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m appointmentsModel) View() string {
	var sb strings.Builder
	header := titleStyle.Render("Appointments") + "  " + metaStyle.Render(m.date)
	if m.flash != "" {
		header += "  " + okStyle.Render(m.flash)
	}
	sb.WriteString(" " + header + "\n")

	if m.loading && len(m.appointments) == 0 {
		sb.WriteString(" " + dimStyle.Render("loading appointments...") + "\n")
		return sb.String()
	}
	if m.err != "" {
		sb.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}
	if len(m.appointments) == 0 {
		sb.WriteString(" " + dimStyle.Render("no appointments today") + "\n")
		return sb.String()
	}

	sb.WriteString(" " + metaStyle.Render(padCell("TIME", 8)+padCell("PATIENT", 24)+padCell("SERVICE", 20)+padCell("STATUS", 12)) + "\n")
	for i, a := range m.appointments {
		line := " " + padCell(a.Time, 8) + padCell(a.PatientName, 24) + padCell(a.ServiceName, 20)
		status := statusStyle(a.Status).Render(padCell(a.Status, 12))
		if i == m.cursor {
			sb.WriteString(selectedRowBg.Render(selectedStyle.Render(line)+status) + "\n")
		} else {
			sb.WriteString(normalStyle.Render(line) + status + "\n")
		}
	}
	sb.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d appointments", len(m.appointments))) + "\n")
	return sb.String()
}

func (m appointmentsModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("d", "done") + "  " + helpEntry("z", "cancel visit") + "  " +
		helpEntry("r", "reload") + "  " + helpEntry("esc", "back")
}
