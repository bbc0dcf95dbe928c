// Package session persists the CLI's login between invocations in a JSON
// file under the user's home directory.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/iliyamo/palm-beach-resort/internal/apiclient"
	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// DefaultPath returns ~/.resortctl/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".resortctl", "session.json"), nil
}

type contents struct {
	Tokens model.AuthTokens `json:"tokens"`
}

// File is an apiclient.TokenStore backed by a file. A missing file reads
// as an empty session.
type File struct {
	path string
	mu   sync.Mutex
}

var _ apiclient.TokenStore = (*File)(nil)

func NewFile(path string) *File { return &File{path: path} }

func (f *File) Path() string { return f.path }

func (f *File) Tokens() (model.AuthTokens, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, err := f.read()
	return c.Tokens, err
}

// SetTokens writes the session with owner-only permissions, replacing the
// previous file atomically.
func (f *File) SetTokens(t model.AuthTokens) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(contents{Tokens: t})
}

// Clear removes the session file.
func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// LoggedIn reports whether an access token is stored.
func (f *File) LoggedIn() bool {
	t, err := f.Tokens()
	return err == nil && t.AccessToken != ""
}

func (f *File) read() (contents, error) {
	var c contents
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read session: %w", err)
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("decode session %s: %w", f.path, err)
	}
	return c, nil
}

func (f *File) write(c contents) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
