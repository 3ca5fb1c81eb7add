// Package filestore keeps each blob in its own file under a data directory.
package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/todokit/internal/store"
)

// File-backed storage. One file per key, human-readable, portable.
// No locking; fine for a local single-user CLI.

const fileExt = ".json"

// ErrInvalidKey is returned for keys that cannot name a file as-is.
var ErrInvalidKey = errors.New("invalid storage key")

// Store writes blobs as <dir>/<key>.json.
type Store struct {
	dir string
}

// New returns a Store rooted at dir. An empty dir means the working directory.
func New(dir string) (*Store, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	return &Store{dir: dir}, nil
}

// Dir is the directory blobs are written to.
func (s *Store) Dir() string { return s.dir }

// Path returns the file that holds key.
func (s *Store) Path(key string) (string, error) {
	name, err := fileName(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

func (s *Store) Get(key string) (string, bool, error) {
	p, err := s.Path(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read file: %w", err)
	}
	return string(b), true, nil
}

// Set writes to a temp file in the same directory and renames it over the
// old one, so a reader sees either the previous snapshot or the new one.
func (s *Store) Set(key, value string) error {
	p, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(p)+".*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// fileName maps key to its file, one file per key. Keys outside
// [A-Za-z0-9._-], or starting with '.', are rejected rather than rewritten
// so two keys can never share a file.
func fileName(key string) (string, error) {
	if key == "" {
		return "", store.ErrEmptyKey
	}
	if strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("%w %q: must not start with '.'", ErrInvalidKey, key)
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return "", fmt.Errorf("%w %q: %q not allowed (use letters, digits, '.', '-', '_')", ErrInvalidKey, key, r)
		}
	}
	return key + fileExt, nil
}
