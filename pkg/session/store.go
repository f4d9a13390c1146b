package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/olimjons/clinicdesk/pkg/domain"
)

// Store is the durable mirror of the last completed login: a bearer token
// and the normalized user record, both present or both absent. The session
// manager is its only writer.
type Store interface {
	// Get returns the persisted token and user, or ("", nil, nil) when
	// nothing is stored.
	Get() (string, *domain.User, error)
	// Set persists both slots; a reader never observes one without
	// the other.
	Set(token string, user domain.User) error
	// Clear removes both slots. Clearing an empty store is a no-op.
	Clear() error
}

type storedSession struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// FileStore keeps the session in a single JSON file under the data dir.
// Writes go through a temp file + rename so both slots land together.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get() (string, *domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("read session file: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", nil, fmt.Errorf("parse session file: %w", err)
	}
	// A half-written or hand-edited record counts as absent.
	if stored.Token == "" || stored.User == nil {
		return "", nil, nil
	}
	return stored.Token, stored.User, nil
}

func (s *FileStore) Set(token string, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.Marshal(storedSession{Token: token, User: &user})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu    sync.Mutex
	token string
	user  *domain.User
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Get() (string, *domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || s.user == nil {
		return "", nil, nil
	}
	u := *s.user
	return s.token, &u, nil
}

func (s *MemStore) Set(token string, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = &user
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return nil
}
