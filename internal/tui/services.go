package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olimjons/clinicdesk/pkg/client"
	"github.com/olimjons/clinicdesk/pkg/domain"
)

type servicesLoadedMsg struct {
	services []domain.Service
	err      error
}

type servicesModel struct {
	client     *client.Client
	services   []domain.Service
	activeOnly bool
	cursor     int
	loading    bool
	err        string
	width      int
	height     int
}

func newServicesModel(c *client.Client) servicesModel {
	return servicesModel{client: c, loading: true}
}

func (m servicesModel) Init() tea.Cmd {
	return m.load()
}

func (m servicesModel) load() tea.Cmd {
	c := m.client
	activeOnly := m.activeOnly
	return func() tea.Msg {
		services, err := c.ListServices(context.Background(), activeOnly)
		return servicesLoadedMsg{services: services, err: err}
	}
}

func (m servicesModel) Update(msg tea.Msg) (servicesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case servicesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if client.IsAuthError(msg.err) {
				return m, authExpired(msg.err)
			}
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.services = msg.services
		if m.cursor >= len(m.services) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.services)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "a":
			m.activeOnly = !m.activeOnly
			m.loading = true
			return m, m.load()
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m servicesModel) View() string {
	var sb strings.Builder
	header := titleStyle.Render("Services")
	if m.activeOnly {
		header += "  " + accentStyle.Render("active only")
	}
	sb.WriteString(" " + header + "\n")

	if m.loading && len(m.services) == 0 {
		sb.WriteString(" " + dimStyle.Render("loading services...") + "\n")
		return sb.String()
	}
	if m.err != "" {
		sb.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}
	if len(m.services) == 0 {
		sb.WriteString(" " + dimStyle.Render("no services") + "\n")
		return sb.String()
	}

	sb.WriteString(" " + metaStyle.Render(padCell("SERVICE", 30)+padCell("CATEGORY", 18)+padCell("PRICE", 12)+"ACTIVE") + "\n")
	for i, s := range m.services {
		active := dimStyle.Render("no")
		if s.Active {
			active = okStyle.Render("yes")
		}
		line := " " + padCell(s.Name, 30) + padCell(s.Category, 18) + padCell(formatMoney(s.Price), 12)
		if i == m.cursor {
			sb.WriteString(selectedRowBg.Render(selectedStyle.Render(line)) + active + "\n")
		} else {
			sb.WriteString(normalStyle.Render(line) + active + "\n")
		}
	}
	sb.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d services", len(m.services))) + "\n")
	return sb.String()
}

func (m servicesModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("a", "active filter") + "  " + helpEntry("r", "reload") + "  " + helpEntry("esc", "back")
}
