package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/olimjons/clinicdesk/pkg/client"
	"github.com/olimjons/clinicdesk/pkg/domain"
)

type patientsLoadedMsg struct {
	patients []domain.Patient
	err      error
}

type patientSavedMsg struct {
	patient *domain.Patient
	err     error
}

type patientDeletedMsg struct {
	id  int64
	err error
}

const (
	patientFormFirst = iota
	patientFormLast
	patientFormPhone
	patientFormBirth
	patientFormCount
)

type patientsModel struct {
	client   *client.Client
	patients []domain.Patient
	cursor   int
	loading  bool
	err      string
	flash    string

	searching bool
	search    string

	adding bool
	form   [patientFormCount]string
	focus  int

	width  int
	height int
}

func newPatientsModel(c *client.Client) patientsModel {
	return patientsModel{client: c, loading: true}
}

func (m patientsModel) Init() tea.Cmd {
	return m.load()
}

func (m patientsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		patients, err := c.ListPatients(context.Background())
		return patientsLoadedMsg{patients: patients, err: err}
	}
}

func (m patientsModel) save() tea.Cmd {
	c := m.client
	req := client.CreatePatientRequest{
		FirstName: strings.TrimSpace(m.form[patientFormFirst]),
		LastName:  strings.TrimSpace(m.form[patientFormLast]),
		Phone:     strings.TrimSpace(m.form[patientFormPhone]),
		BirthDate: strings.TrimSpace(m.form[patientFormBirth]),
	}
	return func() tea.Msg {
		p, err := c.CreatePatient(context.Background(), req)
		return patientSavedMsg{patient: p, err: err}
	}
}

func (m patientsModel) delete(id int64) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return patientDeletedMsg{id: id, err: c.DeletePatient(context.Background(), id)}
	}
}

// visible returns patients matching the search filter, like the web app:
// name + phone, case-insensitive substring.
func (m patientsModel) visible() []domain.Patient {
	if m.search == "" {
		return m.patients
	}
	q := strings.ToLower(m.search)
	var out []domain.Patient
	for _, p := range m.patients {
		hay := strings.ToLower(p.FullName() + " " + p.Phone)
		if strings.Contains(hay, q) {
			out = append(out, p)
		}
	}
	return out
}

func (m patientsModel) Update(msg tea.Msg) (patientsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case patientsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if client.IsAuthError(msg.err) {
				return m, authExpired(msg.err)
			}
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.patients = msg.patients
		if m.cursor >= len(m.patients) {
			m.cursor = 0
		}
		return m, nil

	case patientSavedMsg:
		if msg.err != nil {
			if client.IsAuthError(msg.err) {
				return m, authExpired(msg.err)
			}
			m.err = msg.err.Error()
			return m, nil
		}
		m.adding = false
		m.form = [patientFormCount]string{}
		m.focus = 0
		m.err = ""
		m.flash = "patient added"
		return m, m.load()

	case patientDeletedMsg:
		if msg.err != nil {
			if client.IsAuthError(msg.err) {
				return m, authExpired(msg.err)
			}
			m.err = msg.err.Error()
			return m, nil
		}
		m.flash = "patient removed"
		return m, m.load()

	case tea.KeyMsg:
		if m.adding {
			return m.updateForm(msg)
		}
		if m.searching {
			switch msg.String() {
			case "enter", "esc":
				m.searching = false
			default:
				m.search = editRune(m.search, msg.String())
				m.cursor = 0
			}
			return m, nil
		}
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "/":
			m.searching = true
			m.search = ""
			m.cursor = 0
		case "n":
			m.adding = true
			m.err = ""
			m.flash = ""
		case "r":
			m.loading = true
			return m, m.load()
		case "c":
			if vis := m.visible(); len(vis) > 0 {
				clipboard.WriteAll(vis[m.cursor].Phone) //nolint:errcheck // best-effort copy
				m.flash = "phone copied"
			}
		case "x":
			if vis := m.visible(); len(vis) > 0 {
				return m, m.delete(vis[m.cursor].ID)
			}
		}
	}
	return m, nil
}

func (m patientsModel) updateForm(msg tea.KeyMsg) (patientsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.form = [patientFormCount]string{}
		m.focus = 0
	case "tab", "down":
		m.focus = (m.focus + 1) % patientFormCount
	case "shift+tab", "up":
		m.focus = (m.focus + patientFormCount - 1) % patientFormCount
	case "enter":
		if m.focus < patientFormCount-1 {
			m.focus++
			return m, nil
		}
		if m.form[patientFormFirst] == "" || m.form[patientFormPhone] == "" {
			m.err = "first name and phone are required"
			return m, nil
		}
		m.err = ""
		return m, m.save()
	default:
		m.form[m.focus] = editRune(m.form[m.focus], msg.String())
	}
	return m, nil
}

func (m patientsModel) View() string {
	if m.adding {
		return m.formView()
	}

	var sb strings.Builder
	header := titleStyle.Render("Patients")
	if m.search != "" || m.searching {
		header += "  " + searchStyle.Render("/"+m.search)
	}
	if m.flash != "" {
		header += "  " + okStyle.Render(m.flash)
	}
	sb.WriteString(" " + header + "\n")

	if m.loading && len(m.patients) == 0 {
		sb.WriteString(" " + dimStyle.Render("loading patients...") + "\n")
		return sb.String()
	}
	if m.err != "" {
		sb.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}

	vis := m.visible()
	if len(vis) == 0 {
		sb.WriteString(" " + dimStyle.Render("no patients") + "\n")
		return sb.String()
	}

	sb.WriteString(" " + metaStyle.Render(padCell("NAME", 28)+padCell("PHONE", 18)+padCell("BORN", 12)) + "\n")
	for i, p := range vis {
		line := " " + padCell(p.FullName(), 28) + padCell(p.Phone, 18) + padCell(p.BirthDate, 12)
		if i == m.cursor {
			sb.WriteString(selectedRowBg.Render(selectedStyle.Render(line)) + "\n")
		} else {
			sb.WriteString(normalStyle.Render(line) + "\n")
		}
	}
	sb.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d patients", len(vis))) + "\n")
	return sb.String()
}

func (m patientsModel) formView() string {
	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render("New patient") + "\n\n")
	labels := [patientFormCount]string{"First name", "Last name ", "Phone     ", "Birth date"}
	hints := [patientFormCount]string{"required", "", "required", "YYYY-MM-DD"}
	for i := 0; i < patientFormCount; i++ {
		sb.WriteString(renderFormField(labels[i], m.form[i], hints[i], m.focus == i, false) + "\n")
	}
	if m.err != "" {
		sb.WriteString("\n  " + errorStyle.Render(m.err) + "\n")
	}
	return sb.String()
}

func (m patientsModel) helpKeys() string {
	if m.adding {
		return helpEntry("tab", "next") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	}
	if m.searching {
		return helpEntry("enter", "done") + "  " + helpEntry("esc", "close")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("/", "search") + "  " + helpEntry("n", "new") + "  " +
		helpEntry("c", "copy phone") + "  " + helpEntry("x", "delete") + "  " + helpEntry("r", "reload") + "  " + helpEntry("esc", "back")
}
