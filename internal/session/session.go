// Package session owns the persisted credential token and the policy applied when the
// remote API rejects it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/simonvc/trackit/internal/budget"
)

// ErrLoginRequired means the caller must send the user to the login view.
var ErrLoginRequired = errors.New("login required")

type file struct {
	Token string `json:"token"`
}

type Session struct {
	path string

	mu    sync.RWMutex
	token string
}

// Load reads the token stored at path. A missing file yields an empty session.
func Load(path string) (*Session, error) {
	s := &Session{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", path, err)
	}
	s.token = f.Token
	return s, nil
}

func (s *Session) Authorized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Authorize returns the token, or ErrLoginRequired when there is none.
func (s *Session) Authorize() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrLoginRequired
	}
	return s.token, nil
}

// Set stores token in memory and on disk.
func (s *Session) Set(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	data, err := json.Marshal(file{Token: token})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Clear forgets the token and removes the file.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Fail applies the authorization failure policy to err. An unauthorized response
// clears the session and becomes ErrLoginRequired; anything else passes through.
func (s *Session) Fail(err error) error {
	if !errors.Is(err, budget.ErrUnauthorized) {
		return err
	}
	if cerr := s.Clear(); cerr != nil {
		return errors.Join(fmt.Errorf("%w: %w", ErrLoginRequired, err), cerr)
	}
	return fmt.Errorf("%w: %w", ErrLoginRequired, err)
}
