package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olimjons/clinicdesk/pkg/session"
)

// loginDoneMsg carries the outcome of a login attempt.
type loginDoneMsg struct {
	err error
}

const (
	loginFieldPhone = iota
	loginFieldPassword
)

type loginModel struct {
	mgr        *session.Manager
	phone      string
	password   string
	focus      int
	submitting bool
	errMsg     string
	flash      string // one-shot notice, e.g. after a forced logout
	width      int
	height     int
}

func newLoginModel(mgr *session.Manager) loginModel {
	return loginModel{mgr: mgr}
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

func (m loginModel) submit() tea.Cmd {
	mgr := m.mgr
	phone, password := m.phone, m.password
	return func() tea.Msg {
		return loginDoneMsg{err: mgr.Login(context.Background(), phone, password)}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			if errors.Is(msg.err, session.ErrSuperseded) {
				return m, nil
			}
			m.errMsg = m.mgr.Session().LastError
			m.password = ""
			m.focus = loginFieldPassword
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % 2
		case "shift+tab", "up":
			m.focus = (m.focus + 1) % 2
		case "enter":
			if m.focus == loginFieldPhone {
				m.focus = loginFieldPassword
				return m, nil
			}
			if strings.TrimSpace(m.phone) == "" || m.password == "" {
				m.errMsg = "Enter phone and password"
				return m, nil
			}
			m.submitting = true
			m.errMsg = ""
			m.flash = ""
			return m, m.submit()
		default:
			switch m.focus {
			case loginFieldPhone:
				m.phone = editRune(m.phone, msg.String())
			case loginFieldPassword:
				m.password = editRune(m.password, msg.String())
			}
		}
	}
	return m, nil
}

func (m loginModel) View() string {
	var sb strings.Builder

	sb.WriteString("\n  " + titleStyle.Render("Sign in") + "\n")
	sb.WriteString("  " + metaStyle.Render(strings.Repeat("─", 40)) + "\n\n")

	if m.flash != "" {
		sb.WriteString("  " + warnStyle.Render(m.flash) + "\n\n")
	}

	sb.WriteString(renderFormField("Phone   ", m.phone, "998 xx xxx xx xx", m.focus == loginFieldPhone, false) + "\n")
	sb.WriteString(renderFormField("Password", m.password, "required", m.focus == loginFieldPassword, true) + "\n")

	sb.WriteString("\n")
	switch {
	case m.submitting:
		sb.WriteString("  " + dimStyle.Render("signing in...") + "\n")
	case m.errMsg != "":
		sb.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
	}
	return sb.String()
}

func (m loginModel) helpKeys() string {
	return helpEntry("tab", "next field") + "  " + helpEntry("enter", "sign in") + "  " + helpEntry("ctrl+c", "quit")
}
