package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dom/whatnot-go/internal/domain"
)

// FileStore keeps the bundle as a JSON document on disk.
type FileStore struct {
	path string
}

// NewFile returns a store backed by the document at path. The file is
// created on the first Save.
func NewFile(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the session document.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the bundle, returning ErrNotFound when no document exists.
func (s *FileStore) Load(_ context.Context) (*domain.Credentials, error) {
	const op = "session.FileStore.Load"

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var creds domain.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%s: decode %s: %w", op, s.path, err)
	}
	return &creds, nil
}

// Save writes the bundle with 0600 permissions, replacing any earlier
// document through a temporary file.
func (s *FileStore) Save(_ context.Context, creds *domain.Credentials) error {
	const op = "session.FileStore.Save"

	if err := validate(op, creds); err != nil {
		return err
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session.FileStore.Delete: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
