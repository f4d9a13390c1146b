package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/olimjons/clinicdesk/pkg/client"
	"github.com/olimjons/clinicdesk/pkg/session"
)

// sessionChangedMsg is delivered whenever the session manager completes a
// state transition.
type sessionChangedMsg struct {
	s session.Session
}

// authExpiredMsg is emitted by any screen that observed an AuthError from
// a data call; the app reacts by dropping the session and returning to
// the login screen.
type authExpiredMsg struct {
	err error
}

// navigateMsg asks the app to move to another route. The target still
// passes the route guard.
type navigateMsg struct {
	route string
}

func navigate(route string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: route} }
}

func authExpired(err error) tea.Cmd {
	return func() tea.Msg { return authExpiredMsg{err: err} }
}

// App is the root Bubbletea model. It owns the current route and rebuilds
// the active screen on navigation; every target goes through resolve
// first, so a screen only ever renders for a session allowed to see it.
type App struct {
	client  *client.Client
	mgr     *session.Manager
	log     zerolog.Logger
	version string

	sessionCh chan session.Session

	route      string
	pending    string // where the user wanted to go before landing on login
	loginFlash string

	login        loginModel
	dashboard    dashboardModel
	patients     patientsModel
	appointments appointmentsModel
	services     servicesModel
	users        usersModel
	treatments   treatmentsModel

	width  int
	height int
}

// NewApp creates the root model and subscribes it to session changes.
func NewApp(c *client.Client, mgr *session.Manager, log zerolog.Logger, version string) App {
	a := App{
		client:    c,
		mgr:       mgr,
		log:       log,
		version:   version,
		sessionCh: make(chan session.Session, 32),
	}
	ch := a.sessionCh
	mgr.Subscribe(func(s session.Session) { ch <- s })

	a, _ = a.goTo(routeRoot)
	return a
}

func (a App) Init() tea.Cmd {
	var cmd tea.Cmd
	a, cmd = a.goTo(a.route)
	return tea.Batch(cmd, a.waitForSession())
}

// waitForSession bridges manager notifications into the event loop.
func (a App) waitForSession() tea.Cmd {
	ch := a.sessionCh
	return func() tea.Msg {
		return sessionChangedMsg{s: <-ch}
	}
}

// goTo resolves target through the guard and builds the screen that
// actually renders. A protected target that bounced to login is kept
// pending and replayed after the next successful login.
func (a App) goTo(target string) (App, tea.Cmd) {
	s := a.mgr.Session()
	resolved := resolve(target, s)
	if resolved == routeLogin && target != routeLogin && !s.Authenticated() {
		a.pending = target
	}
	a.route = resolved
	a.log.Debug().Str("target", target).Str("route", resolved).Msg("navigate")

	size := tea.WindowSizeMsg{Width: a.width, Height: a.bodyHeight()}

	var cmd tea.Cmd
	switch {
	case resolved == routeLogin:
		a.login = newLoginModel(a.mgr)
		a.login.flash = a.loginFlash
		a.loginFlash = ""
		a.login, _ = a.login.Update(size)
		cmd = a.login.Init()

	case resolved == routeAdminHome || resolved == routeDoctorHome || resolved == routeReceptionHome:
		a.dashboard = newDashboardModel(a.client, s.Role())
		a.dashboard, _ = a.dashboard.Update(size)
		cmd = a.dashboard.Init()

	case strings.HasSuffix(resolved, "/patients"):
		a.patients = newPatientsModel(a.client)
		a.patients, _ = a.patients.Update(size)
		cmd = a.patients.Init()

	case strings.HasSuffix(resolved, "/appointments"):
		a.appointments = newAppointmentsModel(a.client)
		a.appointments, _ = a.appointments.Update(size)
		cmd = a.appointments.Init()

	case resolved == routeAdminServices:
		a.services = newServicesModel(a.client)
		a.services, _ = a.services.Update(size)
		cmd = a.services.Init()

	case resolved == routeAdminUsers:
		a.users = newUsersModel(a.client)
		a.users, _ = a.users.Update(size)
		cmd = a.users.Init()

	case strings.HasSuffix(resolved, "/treatments"):
		a.treatments = newTreatmentsModel(a.client)
		a.treatments, _ = a.treatments.Update(size)
		cmd = a.treatments.Init()
	}
	return a, cmd
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.forward(tea.WindowSizeMsg{Width: msg.Width, Height: a.bodyHeight()})

	case sessionChangedMsg:
		var cmd tea.Cmd
		switch {
		case !msg.s.Authenticated() && a.route != routeLogin:
			// Forced logout from elsewhere: degrade to the login screen.
			a, cmd = a.goTo(routeLogin)
		case msg.s.Status == session.StatusSucceeded && a.route == routeLogin:
			target := a.pending
			a.pending = ""
			if target == "" {
				target = routeRoot
			}
			a, cmd = a.goTo(target)
		}
		return a, tea.Batch(cmd, a.waitForSession())

	case authExpiredMsg:
		a.log.Warn().Err(msg.err).Msg("session expired, forcing logout")
		a.loginFlash = "Session expired, please sign in again"
		a.mgr.Logout()
		var cmd tea.Cmd
		a, cmd = a.goTo(routeLogin)
		return a, cmd

	case navigateMsg:
		var cmd tea.Cmd
		a, cmd = a.goTo(msg.route)
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if !a.isEditing() {
				return a, tea.Quit
			}
		case "ctrl+l":
			if a.route != routeLogin {
				a.mgr.Logout()
				var cmd tea.Cmd
				a, cmd = a.goTo(routeLogin)
				return a, cmd
			}
		case "esc":
			if !a.isEditing() && a.route != routeLogin && !a.atHome() {
				return a, navigate(a.mgr.Session().Role().HomeRoute())
			}
		}
	}

	return a.forward(msg)
}

// forward routes a message to the active screen.
func (a App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case a.route == routeLogin:
		a.login, cmd = a.login.Update(msg)
	case a.atHome():
		a.dashboard, cmd = a.dashboard.Update(msg)
	case strings.HasSuffix(a.route, "/patients"):
		a.patients, cmd = a.patients.Update(msg)
	case strings.HasSuffix(a.route, "/appointments"):
		a.appointments, cmd = a.appointments.Update(msg)
	case a.route == routeAdminServices:
		a.services, cmd = a.services.Update(msg)
	case a.route == routeAdminUsers:
		a.users, cmd = a.users.Update(msg)
	case strings.HasSuffix(a.route, "/treatments"):
		a.treatments, cmd = a.treatments.Update(msg)
	}
	return a, cmd
}

func (a App) atHome() bool {
	return a.route == routeAdminHome || a.route == routeDoctorHome || a.route == routeReceptionHome
}

// isEditing reports whether the active screen owns the keyboard, so
// global single-letter shortcuts must stay out of the way.
func (a App) isEditing() bool {
	if a.route == routeLogin {
		return true
	}
	if strings.HasSuffix(a.route, "/patients") {
		return a.patients.adding || a.patients.searching
	}
	return false
}

// bodyHeight is the terminal height minus chrome: header(2) + help(1).
func (a App) bodyHeight() int {
	return a.height - 3
}

func (a App) View() string {
	s := a.mgr.Session()

	// Header: wordmark left, identity right.
	left := " " + accentStyle.Render("CLINICDESK") + " " + metaStyle.Render(a.version)
	right := ""
	if s.Authenticated() {
		right = normalStyle.Render(s.User.DisplayName) + " " + RoleStyle(s.Role()).Render(string(s.Role()))
	}
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	header := left + strings.Repeat(" ", gap) + right
	header += "\n " + metaStyle.Render(strings.Repeat("─", max(a.width-2, 4)))

	// Body.
	var body, help string
	switch {
	case a.route == routeLogin:
		body = a.login.View()
		help = a.login.helpKeys()
	case a.atHome():
		body = a.dashboard.View()
		help = a.dashboard.helpKeys()
	case strings.HasSuffix(a.route, "/patients"):
		body = a.patients.View()
		help = a.patients.helpKeys()
	case strings.HasSuffix(a.route, "/appointments"):
		body = a.appointments.View()
		help = a.appointments.helpKeys()
	case a.route == routeAdminServices:
		body = a.services.View()
		help = a.services.helpKeys()
	case a.route == routeAdminUsers:
		body = a.users.View()
		help = a.users.helpKeys()
	case strings.HasSuffix(a.route, "/treatments"):
		body = a.treatments.View()
		help = a.treatments.helpKeys()
	}

	body = strings.TrimRight(truncateToHeight(body, a.bodyHeight()), "\n")
	return header + "\n" + body + "\n " + help
}
