// Package auth keeps the opaque credential that decides whether estimates
// live on the backend or only on this machine. Its contents are never
// inspected.
package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyToken is returned by Set when given a blank token.
var ErrEmptyToken = errors.New("auth token is empty")

// Signal reports whether the user is authenticated.
type Signal interface {
	Present() bool
}

// TokenSource supplies the credential sent with backend requests.
type TokenSource interface {
	Signal
	Token() string
}

// FileStore keeps the token in a single file. A non-empty override, usually
// taken from ESTIMO_TOKEN, wins over the file.
type FileStore struct {
	path     string
	override string
}

// NewFileStore creates a FileStore backed by path.
func NewFileStore(path, override string) *FileStore {
	return &FileStore{path: path, override: strings.TrimSpace(override)}
}

// Path returns the token file location.
func (s *FileStore) Path() string {
	return s.path
}

// Overridden reports whether the token comes from the environment.
func (s *FileStore) Overridden() bool {
	return s.override != ""
}

// Token returns the current token, or "" when signed out. Read errors are
// treated as signed out.
func (s *FileStore) Token() string {
	if s.override != "" {
		return s.override
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Present reports whether a token is available.
func (s *FileStore) Present() bool {
	return s.Token() != ""
}

// Set writes token to the file with owner-only permissions.
func (s *FileStore) Set(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// Clear removes the token file. A missing file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// Static is a fixed Signal and TokenSource.
type Static string

func (s Static) Token() string { return string(s) }

func (s Static) Present() bool { return s != "" }
