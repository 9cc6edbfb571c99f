package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/reposel/internal/fsops"
)

// FileKV implements KV with one file per key under a directory. Writes are
// atomic, so a concurrent reader in another process sees whole values only.
type FileKV struct {
	fs  fsops.FS
	dir string
}

// NewFileKV creates a FileKV rooted at dir.
func NewFileKV(fs fsops.FS, dir string) *FileKV {
	return &FileKV{fs: fs, dir: dir}
}

// Dir returns the directory holding the key files.
func (s *FileKV) Dir() string {
	return s.dir
}

func (s *FileKV) path(key string) (string, error) {
	if err := s.fs.ValidateIdentifier(key); err != nil {
		return "", fmt.Errorf("invalid storage key %q: %w", key, err)
	}
	return filepath.Join(s.dir, key), nil
}

// Get reads the file for key.
func (s *FileKV) Get(ctx context.Context, key string) (string, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return "", false, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set atomically replaces the file for key.
func (s *FileKV) Set(ctx context.Context, key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := s.fs.AtomicWrite(path, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes the file for key.
func (s *FileKV) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
