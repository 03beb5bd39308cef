// Package session persists the signed-in user and bearer token
// between runs. It is the explicit session object injected into the
// API client and store at startup; nothing reads session state ad hoc.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// State is the persisted session payload. AvatarURL is cosmetic.
type State struct {
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Token     string `json:"token"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Session is a file-backed session. The file holds the State as JSON
// with owner-only permissions, since it contains the bearer token.
type Session struct {
	path string

	mu    sync.RWMutex
	state State
}

// Open loads the session file if it exists; a missing file yields a
// signed-out session, not an error.
func Open(path string) (*Session, error) {
	s := &Session{path: path}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.state); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	return s, nil
}

// DefaultPath places the session file under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "moneydash", "session.json"), nil
}

// SignedIn reports whether a user and token are present.
func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token != "" && s.state.UserID != 0
}

// Token implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// State returns a copy of the current session state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Save replaces the session state and persists it.
func (s *Session) Save(state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	return s.write()
}

// SetAvatarURL updates the cosmetic avatar and persists.
func (s *Session) SetAvatarURL(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AvatarURL = url
	return s.write()
}

// Clear signs out: in-memory state is zeroed and the file removed.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *Session) write() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
