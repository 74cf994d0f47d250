// Package session holds the client-side session: the signed-in user's
// public projection paired with the bearer token, persisted across runs as
// a single JSON blob.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopmate/shopmate-go/internal/model"
)

// FileName is the fixed name of the persisted session blob inside the
// client's state directory.
const FileName = "session.json"

// Session pairs a user's public projection with a bearer token. An empty
// Token means unauthenticated.
type Session struct {
	User  *model.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store owns the current session and writes every change through to disk.
// Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	path    string
	current Session
}

// NewStore creates a session store persisting to dir/session.json.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

// Load restores the persisted session. An absent or unparsable blob leaves
// the store unauthenticated rather than failing: a corrupt session file is
// equivalent to being logged out.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.current = Session{}
			return nil
		}
		return fmt.Errorf("reading session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.current = Session{}
		return nil
	}

	s.current = sess
	return nil
}

// Current returns a copy of the session.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set atomically replaces the session and persists it.
func (s *Store) Set(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = sess
	return s.persist()
}

// SetUser replaces only the user portion, keeping the token. Used after a
// successful profile update: the token stays valid since it carries only
// the user id.
func (s *Store) SetUser(user model.PublicUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.User = &user
	return s.persist()
}

// Clear resets the session to unauthenticated and persists the empty blob.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{}
	return s.persist()
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	data, err := json.Marshal(s.current)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}
