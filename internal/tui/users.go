package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olimjons/clinicdesk/pkg/client"
	"github.com/olimjons/clinicdesk/pkg/domain"
)

type staffLoadedMsg struct {
	staff []domain.Staff
	err   error
}

type usersModel struct {
	client  *client.Client
	staff   []domain.Staff
	cursor  int
	loading bool
	err     string
	width   int
	height  int
}

func newUsersModel(c *client.Client) usersModel {
	return usersModel{client: c, loading: true}
}

func (m usersModel) Init() tea.Cmd {
	return m.load()
}

func (m usersModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		staff, err := c.ListStaff(context.Background())
		return staffLoadedMsg{staff: staff, err: err}
	}
}

func (m usersModel) Update(msg tea.Msg) (usersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case staffLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if client.IsAuthError(msg.err) {
				return m, authExpired(msg.err)
			}
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.staff = msg.staff
		if m.cursor >= len(m.staff) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.staff)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m usersModel) View() string {
	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render("Staff") + "\n")

	if m.loading && len(m.staff) == 0 {
		sb.WriteString(" " + dimStyle.Render("loading staff...") + "\n")
		return sb.String()
	}
	if m.err != "" {
		sb.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}
	if len(m.staff) == 0 {
		sb.WriteString(" " + dimStyle.Render("no staff accounts") + "\n")
		return sb.String()
	}

	sb.WriteString(" " + metaStyle.Render(padCell("NAME", 28)+padCell("PHONE", 18)+padCell("ROLE", 12)) + "\n")
	for i, u := range m.staff {
		role := RoleStyle(domain.ParseRole(u.Role)).Render(padCell(u.Role, 12))
		line := " " + padCell(u.FullName, 28) + padCell(u.Phone, 18)
		if i == m.cursor {
			sb.WriteString(selectedRowBg.Render(selectedStyle.Render(line)) + role + "\n")
		} else {
			sb.WriteString(normalStyle.Render(line) + role + "\n")
		}
	}
	sb.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d accounts", len(m.staff))) + "\n")
	return sb.String()
}

func (m usersModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("r", "reload") + "  " + helpEntry("esc", "back")
}
