package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists the bearer token between runs, the terminal
// counterpart of the web dashboard's localStorage entry. Set on login, read
// before every authenticated request, cleared on logout or when the server
// rejects the session.
type TokenStore struct {
	path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

func DefaultTokenPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "pensieve", "token")
}

// Get returns the stored token, or "" when logged out.
func (t *TokenStore) Get() string {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (t *TokenStore) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(t.path, []byte(token+"\n"), 0o600)
}

// Clear forgets the session. Clearing an already-absent token succeeds.
func (t *TokenStore) Clear() error {
	err := os.Remove(t.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
