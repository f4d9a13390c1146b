package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/olimjons/clinicdesk/pkg/client"
	"github.com/olimjons/clinicdesk/pkg/domain"
)

// ErrSuperseded is returned by Login when a newer login or a logout
// completed first; the attempt's outcome was discarded.
var ErrSuperseded = errors.New("login superseded by a newer attempt")

// Status is the login lifecycle state.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Session is a snapshot of the authentication state. Token and User are
// both set or both unset; a session is never half authenticated.
type Session struct {
	Token     string
	User      *domain.User
	Status    Status
	LastError string
}

// Authenticated reports whether the session holds a token + user pair.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Role returns the session's role, or "" when unauthenticated.
func (s Session) Role() domain.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Manager owns the session state machine and is the only writer of the
// Store. Screens read snapshots through Session() or subscribe for
// change notifications; they never mutate state themselves.
type Manager struct {
	client *client.Client
	store  Store
	log    zerolog.Logger

	mu   sync.Mutex
	cur  Session
	gen  uint64 // bumped by every Login and Logout; stale completions are dropped
	subs []func(Session)
}

// NewManager creates a Manager and hydrates it from the store. A persisted
// session starts in idle with its token installed on the client.
func NewManager(c *client.Client, store Store, log zerolog.Logger) *Manager {
	m := &Manager{
		client: c,
		store:  store,
		log:    log,
		cur:    Session{Status: StatusIdle},
	}

	token, user, err := store.Get()
	if err != nil {
		log.Warn().Err(err).Msg("session hydrate failed, starting logged out")
		return m
	}
	if token != "" && user != nil {
		m.cur = Session{Token: token, User: user, Status: StatusIdle}
		c.SetToken(token)
		log.Info().Str("user", user.DisplayName).Str("role", string(user.Role)).Msg("session restored")
	}
	return m
}

// Session returns a snapshot of the current state.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers fn to be called with a snapshot after every
// completed state transition. Registration order is call order.
func (m *Manager) Subscribe(fn func(Session)) {
	m.mu.Lock()
	m.subs = append(m.subs, fn)
	m.mu.Unlock()
}

// Login authenticates with the backend. On success the token and
// normalized user are persisted together and the session moves to
// succeeded; on failure the session moves to failed with the error's
// message and the store is left untouched. Interleaved attempts are
// cancel-and-replace: if another Login or a Logout completes first,
// this attempt's result is discarded and ErrSuperseded returned.
func (m *Manager) Login(ctx context.Context, phone, password string) error {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.cur.Status = StatusLoading
	m.cur.LastError = ""
	snap := m.snapshotLocked()
	subs := m.subsLocked()
	m.mu.Unlock()
	notify(subs, snap)

	res, err := m.client.Login(ctx, phone, password)

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		m.log.Debug().Str("phone", phone).Msg("stale login result discarded")
		return ErrSuperseded
	}

	if err == nil && res.Token == "" {
		err = errors.New("login response missing token")
	}
	if err == nil {
		user := res.User.Normalize()
		if storeErr := m.store.Set(res.Token, user); storeErr != nil {
			err = storeErr
		} else {
			m.client.SetToken(res.Token)
			m.cur = Session{Token: res.Token, User: &user, Status: StatusSucceeded}
			snap = m.snapshotLocked()
			subs = m.subsLocked()
			m.mu.Unlock()
			m.log.Info().Str("user", user.DisplayName).Str("role", string(user.Role)).Msg("login succeeded")
			notify(subs, snap)
			return nil
		}
	}

	msg := err.Error()
	if msg == "" {
		msg = "Login failed"
	}
	m.cur = Session{Status: StatusFailed, LastError: msg}
	m.client.SetToken("")
	snap = m.snapshotLocked()
	subs = m.subsLocked()
	m.mu.Unlock()
	m.log.Warn().Err(err).Msg("login failed")
	notify(subs, snap)
	return err
}

// Logout drops the session locally: both store slots are cleared, the
// client token removed and the state reset to empty idle. It needs no
// backend call and succeeds even when nothing was stored. Any in-flight
// login is invalidated.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.gen++
	if err := m.store.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("clearing persisted session failed")
	}
	m.client.SetToken("")
	m.cur = Session{Status: StatusIdle}
	snap := m.snapshotLocked()
	subs := m.subsLocked()
	m.mu.Unlock()
	m.log.Info().Msg("logged out")
	notify(subs, snap)
}

// snapshotLocked copies the session, including the user record, so a
// subscriber can never alias manager state. Caller holds mu.
func (m *Manager) snapshotLocked() Session {
	snap := m.cur
	if m.cur.User != nil {
		u := *m.cur.User
		snap.User = &u
	}
	return snap
}

func (m *Manager) subsLocked() []func(Session) {
	subs := make([]func(Session), len(m.subs))
	copy(subs, m.subs)
	return subs
}

func notify(subs []func(Session), snap Session) {
	for _, fn := range subs {
		fn(snap)
	}
}
