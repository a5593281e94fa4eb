package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// Session is the signed-in state of one API consumer: a bearer token and
// the user it belongs to. A Session with a path persists itself there on
// every Set and Clear, and Load restores it.
type Session struct {
	mu    sync.RWMutex
	path  string
	token string
	user  *User
}

type persistedSession struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// NewSession returns an empty session persisted at path. An empty path keeps
// the session in memory only.
func NewSession(path string) *Session {
	return &Session{path: path}
}

// Load restores the session from its file. A missing file leaves the session
// signed out without error.
func (s *Session) Load() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	var p persistedSession
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = p.Token, p.User
	return nil
}

// Set records a successful sign-in.
func (s *Session) Set(token string, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = token, &u
	return s.persist()
}

// Clear signs the session out and removes its file.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in user.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// persist writes the session file with owner-only permissions. Callers hold mu.
func (s *Session) persist() error {
	if s.path == "" {
		return nil
	}
	data, err := json.Marshal(persistedSession{Token: s.token, User: s.user})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
