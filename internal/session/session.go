// Package session owns the persisted login session: the bearer token and
// the user record it belongs to. All reads and writes of the durable copy
// go through a Store so the two are always set or cleared together.
package session

import (
	"encoding/json"
	"fmt"
	"os"

	"taskflow/internal/config"
	"taskflow/internal/service"
)

// Session is a logged-in identity: an opaque bearer token plus the user
// record the backend returned with it.
type Session struct {
	Token string       `json:"token"`
	User  service.User `json:"user"`
}

// Store owns the durable session copy in session.json under the config
// directory. A nil current session means logged out.
type Store struct {
	cfg *config.Config
}

// NewStore creates a session store for the given config.
func NewStore(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

// Current returns the stored session, or nil if not logged in.
// A corrupt or token-less session file reads as logged out.
func (s *Store) Current() *Session {
	data, err := os.ReadFile(s.cfg.SessionPath())
	if err != nil {
		return nil
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil
	}
	if sess.Token == "" {
		return nil
	}
	return &sess
}

// Token returns the stored bearer token, or "" if not logged in.
func (s *Store) Token() string {
	if sess := s.Current(); sess != nil {
		return sess.Token
	}
	return ""
}

// Set persists a session. Token and user are written as a single
// document with mode 0600.
func (s *Store) Set(sess Session) error {
	if sess.Token == "" {
		return fmt.Errorf("refusing to store session without token")
	}
	if err := s.cfg.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.cfg.SessionPath(), data, 0600)
}

// Clear removes the stored session. Clearing when logged out is a no-op.
func (s *Store) Clear() error {
	err := os.Remove(s.cfg.SessionPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
