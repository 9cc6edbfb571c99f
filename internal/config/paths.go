// Package config manages reposel configuration and filesystem paths.
//
// The default root is ~/.reposel/ containing the file-backed state directory,
// the SQLite state database and config.yaml. The root can be moved with the
// REPOSEL_ROOT environment variable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by reposel.
type Paths struct {
	// Root is the base directory for all reposel data (default: ~/.reposel)
	Root string

	// State is the directory holding one file per persisted storage key
	State string

	// Database is the SQLite file used by the sqlite storage backend
	Database string

	// Config is the path to the global config file
	Config string
}

// DefaultPaths returns the default paths for reposel.
// Paths can be overridden with environment variables:
// - REPOSEL_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("REPOSEL_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".reposel")
	}

	return PathsAt(root), nil
}

// PathsAt returns the paths rooted at root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:     root,
		State:    filepath.Join(root, "state"),
		Database: filepath.Join(root, "state.db"),
		Config:   filepath.Join(root, "config.yaml"),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Root, p.State} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
