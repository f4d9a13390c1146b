package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olimjons/clinicdesk/pkg/client"
	"github.com/olimjons/clinicdesk/pkg/domain"
)

type treatmentsLoadedMsg struct {
	treatments []domain.Treatment
	debts      []domain.DebtEntry
	err        error
}

type treatmentsModel struct {
	client     *client.Client
	treatments []domain.Treatment
	debts      []domain.DebtEntry
	showDebts  bool
	cursor     int
	loading    bool
	err        string
	width      int
	height     int
}

func newTreatmentsModel(c *client.Client) treatmentsModel {
	return treatmentsModel{client: c, loading: true}
}

func (m treatmentsModel) Init() tea.Cmd {
	return m.load()
}

func (m treatmentsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		treatments, err := c.ListTreatments(context.Background())
		if err != nil {
			return treatmentsLoadedMsg{err: err}
		}
		debts, err := c.ListDebts(context.Background())
		if err != nil {
			return treatmentsLoadedMsg{err: err}
		}
		return treatmentsLoadedMsg{treatments: treatments, debts: debts}
	}
}

func (m treatmentsModel) Update(msg tea.Msg) (treatmentsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case treatmentsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if client.IsAuthError(msg.err) {
				return m, authExpired(msg.err)
			}
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.treatments = msg.treatments
		m.debts = msg.debts
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < m.rows()-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "b":
			m.showDebts = !m.showDebts
			m.cursor = 0
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m treatmentsModel) rows() int {
	if m.showDebts {
		return len(m.debts)
	}
	return len(m.treatments)
}

func (m treatmentsModel) View() string {
	if m.showDebts {
		return m.debtsView()
	}

	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render("Treatments") + "\n")

	if m.loading && len(m.treatments) == 0 {
		sb.WriteString(" " + dimStyle.Render("loading treatments...") + "\n")
		return sb.String()
	}
	if m.err != "" {
		sb.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}
	if len(m.treatments) == 0 {
		sb.WriteString(" " + dimStyle.Render("no treatments") + "\n")
		return sb.String()
	}

	sb.WriteString(" " + metaStyle.Render(padCell("PATIENT", 26)+padCell("SERVICE", 22)+padCell("TOTAL", 12)+padCell("DEBT", 12)) + "\n")
	for i, tr := range m.treatments {
		debt := okStyle.Render(padCell("-", 12))
		if tr.Debt() > 0 {
			debt = errorStyle.Render(padCell(formatMoney(tr.Debt()), 12))
		}
		line := " " + padCell(tr.PatientName, 26) + padCell(tr.ServiceName, 22) + padCell(formatMoney(tr.Total), 12)
		if i == m.cursor {
			sb.WriteString(selectedRowBg.Render(selectedStyle.Render(line)) + debt + "\n")
		} else {
			sb.WriteString(normalStyle.Render(line) + debt + "\n")
		}
	}
	return sb.String()
}

func (m treatmentsModel) debtsView() string {
	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render("Outstanding debts") + "\n")

	if len(m.debts) == 0 {
		sb.WriteString(" " + dimStyle.Render("no debts, well done") + "\n")
		return sb.String()
	}

	var total float64
	sb.WriteString(" " + metaStyle.Render(padCell("PATIENT", 28)+padCell("PHONE", 18)+padCell("AMOUNT", 12)) + "\n")
	for i, d := range m.debts {
		total += d.Amount
		line := " " + padCell(d.PatientName, 28) + padCell(d.Phone, 18)
		amount := errorStyle.Render(padCell(formatMoney(d.Amount), 12))
		if i == m.cursor {
			sb.WriteString(selectedRowBg.Render(selectedStyle.Render(line)) + amount + "\n")
		} else {
			sb.WriteString(normalStyle.Render(line) + amount + "\n")
		}
	}
	sb.WriteString(" " + metaStyle.Render(fmt.Sprintf("total %s", formatMoney(total))) + "\n")
	return sb.String()
}

func (m treatmentsModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("b", "debts") + "  " + helpEntry("r", "reload") + "  " + helpEntry("esc", "back")
}
