package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/olimjons/clinicdesk/pkg/client"
	"github.com/olimjons/clinicdesk/pkg/session"
)

func newTestApp(t *testing.T, handler http.HandlerFunc) (App, *session.Manager) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := client.New(srv.URL)
	mgr := session.NewManager(c, session.NewMemStore(), zerolog.Nop())
	a := NewApp(c, mgr, zerolog.Nop(), "test")
	a, _ = drive(a, tea.WindowSizeMsg{Width: 100, Height: 30})
	return a, mgr
}

func drive(a App, msg tea.Msg) (App, tea.Cmd) {
	model, cmd := a.Update(msg)
	return model.(App), cmd
}

func loginHandler(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"token":"tok-1","user":{"id":7,"full_name":"Ali Valiyev","role":"` + role + `"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}
}

func TestStartsOnLoginWhenUnauthenticated(t *testing.T) {
	a, _ := newTestApp(t, loginHandler("admin"))

	if a.route != routeLogin {
		t.Fatalf("route = %q, want %q", a.route, routeLogin)
	}
	if !strings.Contains(a.View(), "Sign in") {
		t.Errorf("view should show the login form:\n%s", a.View())
	}
}

func TestProtectedTargetRemembersPendingRoute(t *testing.T) {
	a, mgr := newTestApp(t, loginHandler("admin"))

	a, _ = drive(a, navigateMsg{route: routeAdminPatients})
	if a.route != routeLogin {
		t.Fatalf("route = %q, want %q", a.route, routeLogin)
	}
	if a.pending != routeAdminPatients {
		t.Fatalf("pending = %q, want %q", a.pending, routeAdminPatients)
	}

	if err := mgr.Login(context.Background(), "998901234567", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	a, _ = drive(a, sessionChangedMsg{s: mgr.Session()})

	if a.route != routeAdminPatients {
		t.Errorf("route after login = %q, want %q", a.route, routeAdminPatients)
	}
	if a.pending != "" {
		t.Errorf("pending should be cleared, got %q", a.pending)
	}
	if !strings.Contains(a.View(), "Patients") {
		t.Errorf("view should show the patients screen:\n%s", a.View())
	}
}

func TestLoginLandsOnRoleHome(t *testing.T) {
	cases := []struct {
		role string
		home string
	}{
		{"admin", routeAdminHome},
		{"doctor", routeDoctorHome},
		{"reception", routeReceptionHome},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			a, mgr := newTestApp(t, loginHandler(tc.role))

			if err := mgr.Login(context.Background(), "998901234567", "secret"); err != nil {
				t.Fatalf("Login: %v", err)
			}
			a, _ = drive(a, sessionChangedMsg{s: mgr.Session()})

			if a.route != tc.home {
				t.Errorf("route = %q, want %q", a.route, tc.home)
			}
		})
	}
}

func TestHeaderShowsIdentityAfterLogin(t *testing.T) {
	a, mgr := newTestApp(t, loginHandler("doctor"))

	if err := mgr.Login(context.Background(), "998901234567", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	a, _ = drive(a, sessionChangedMsg{s: mgr.Session()})

	view := a.View()
	if !strings.Contains(view, "Ali Valiyev") {
		t.Errorf("header should show the user name:\n%s", view)
	}
	if !strings.Contains(view, "doctor") {
		t.Errorf("header should show the role badge:\n%s", view)
	}
}

func TestAuthExpiredForcesLogout(t *testing.T) {
	a, mgr := newTestApp(t, loginHandler("admin"))

	if err := mgr.Login(context.Background(), "998901234567", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	a, _ = drive(a, sessionChangedMsg{s: mgr.Session()})
	a, _ = drive(a, navigateMsg{route: routeAdminPatients})

	a, _ = drive(a, authExpiredMsg{err: &client.AuthError{StatusCode: 401}})

	if a.route != routeLogin {
		t.Fatalf("route = %q, want %q", a.route, routeLogin)
	}
	if mgr.Session().Authenticated() {
		t.Error("session should be cleared after a forced logout")
	}
	if !strings.Contains(a.View(), "Session expired") {
		t.Errorf("login screen should explain the forced logout:\n%s", a.View())
	}
}

func TestCtrlLLogsOut(t *testing.T) {
	a, mgr := newTestApp(t, loginHandler("reception"))

	if err := mgr.Login(context.Background(), "998901234567", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	a, _ = drive(a, sessionChangedMsg{s: mgr.Session()})

	a, _ = drive(a, tea.KeyMsg{Type: tea.KeyCtrlL})

	if a.route != routeLogin {
		t.Errorf("route = %q, want %q", a.route, routeLogin)
	}
	if mgr.Session().Authenticated() {
		t.Error("session should be cleared")
	}
}

func TestEscReturnsToRoleHome(t *testing.T) {
	a, mgr := newTestApp(t, loginHandler("admin"))

	if err := mgr.Login(context.Background(), "998901234567", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	a, _ = drive(a, sessionChangedMsg{s: mgr.Session()})
	a, _ = drive(a, navigateMsg{route: routeAdminServices})
	if a.route != routeAdminServices {
		t.Fatalf("route = %q, want %q", a.route, routeAdminServices)
	}

	a, cmd := drive(a, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		a, _ = drive(a, cmd())
	}

	if a.route != routeAdminHome {
		t.Errorf("route = %q, want %q", a.route, routeAdminHome)
	}
}

func TestWrongRoleTargetBouncesToOwnHome(t *testing.T) {
	a, mgr := newTestApp(t, loginHandler("doctor"))

	if err := mgr.Login(context.Background(), "998901234567", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	a, _ = drive(a, sessionChangedMsg{s: mgr.Session()})

	a, _ = drive(a, navigateMsg{route: routeAdminUsers})

	if a.route != routeDoctorHome {
		t.Errorf("route = %q, want %q", a.route, routeDoctorHome)
	}
}

func TestQuitKeys(t *testing.T) {
	a, mgr := newTestApp(t, loginHandler("admin"))

	// "q" on the login screen types into the focused field.
	a2, cmd := drive(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd != nil {
		t.Error("q while typing must not quit")
	}
	if a2.login.phone != "q" {
		t.Errorf("phone = %q, want %q", a2.login.phone, "q")
	}

	if err := mgr.Login(context.Background(), "998901234567", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	a, _ = drive(a, sessionChangedMsg{s: mgr.Session()})

	_, cmd = drive(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q on a dashboard should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should produce tea.Quit")
	}
}
