package tui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/olimjons/clinicdesk/pkg/client"
	"github.com/olimjons/clinicdesk/pkg/session"
)

func newTestLogin(t *testing.T, handler http.HandlerFunc) (loginModel, *session.Manager) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := client.New(srv.URL)
	mgr := session.NewManager(c, session.NewMemStore(), zerolog.Nop())
	return newLoginModel(mgr), mgr
}

func typeLogin(m loginModel, s string) loginModel {
	for _, r := range s {
		m, _ = m.Update(keyRune(r))
	}
	return m
}

func TestLoginRequiresBothFields(t *testing.T) {
	m, _ := newTestLogin(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // focus moves to password
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("empty form must not submit")
	}
	if m.errMsg != "Enter phone and password" {
		t.Errorf("errMsg = %q", m.errMsg)
	}
}

func TestLoginSuccess(t *testing.T) {
	m, mgr := newTestLogin(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-1","user":{"id":1,"full_name":"Ali Valiyev","role":"admin"}}`))
	})

	m = typeLogin(m, "998901234567")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeLogin(m, "secret")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should submit")
	}
	if !m.submitting {
		t.Error("model should be submitting")
	}

	msg := cmd().(loginDoneMsg)
	if msg.err != nil {
		t.Fatalf("login: %v", msg.err)
	}
	m, _ = m.Update(msg)
	if m.submitting {
		t.Error("submitting should clear")
	}
	if m.errMsg != "" {
		t.Errorf("errMsg = %q, want empty", m.errMsg)
	}

	s := mgr.Session()
	if s.Status != session.StatusSucceeded || s.User.DisplayName != "Ali Valiyev" {
		t.Errorf("session = %+v", s)
	}
}

func TestLoginFailureShowsMessage(t *testing.T) {
	m, mgr := newTestLogin(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Invalid phone or password"))
	})

	m = typeLogin(m, "998901234567")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeLogin(m, "wrong")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msg := cmd().(loginDoneMsg)
	if msg.err == nil {
		t.Fatal("login should fail")
	}
	m, _ = m.Update(msg)

	if m.errMsg != "Invalid phone or password" {
		t.Errorf("errMsg = %q", m.errMsg)
	}
	if m.password != "" {
		t.Error("password should clear after a failure")
	}
	if mgr.Session().Authenticated() {
		t.Error("session must not authenticate on failure")
	}
	if !strings.Contains(m.View(), "Invalid phone or password") {
		t.Errorf("view should show the error:\n%s", m.View())
	}
}

func TestLoginMasksPassword(t *testing.T) {
	m, _ := newTestLogin(t, func(w http.ResponseWriter, r *http.Request) {})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeLogin(m, "secret")

	view := m.View()
	if strings.Contains(view, "secret") {
		t.Errorf("password must be masked:\n%s", view)
	}
	if !strings.Contains(view, "••••••") {
		t.Errorf("masked password should render as bullets:\n%s", view)
	}
}

func TestLoginIgnoresKeysWhileSubmitting(t *testing.T) {
	m, _ := newTestLogin(t, func(w http.ResponseWriter, r *http.Request) {})
	m.submitting = true

	m2 := typeLogin(m, "abc")
	if m2.phone != "" {
		t.Error("input while submitting should be ignored")
	}
}
