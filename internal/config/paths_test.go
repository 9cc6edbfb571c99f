package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	t.Run("returns paths based on home directory", func(t *testing.T) {
		t.Setenv("REPOSEL_ROOT", "")

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if filepath.Base(paths.Root) != ".reposel" {
			t.Errorf("Root should end with .reposel, got: %s", paths.Root)
		}
		if paths.State != filepath.Join(paths.Root, "state") {
			t.Errorf("State path incorrect: got %s", paths.State)
		}
		if paths.Database != filepath.Join(paths.Root, "state.db") {
			t.Errorf("Database path incorrect: got %s", paths.Database)
		}
		if paths.Config != filepath.Join(paths.Root, "config.yaml") {
			t.Errorf("Config path incorrect: got %s", paths.Config)
		}
	})

	t.Run("respects REPOSEL_ROOT environment variable", func(t *testing.T) {
		customRoot := "/custom/reposel/path"
		t.Setenv("REPOSEL_ROOT", customRoot)

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}
		if paths.Root != customRoot {
			t.Errorf("expected Root=%s, got %s", customRoot, paths.Root)
		}
		if paths.State != filepath.Join(customRoot, "state") {
			t.Errorf("State path incorrect: got %s", paths.State)
		}
	})
}

func TestPaths_EnsureDirectories(t *testing.T) {
	paths := PathsAt(filepath.Join(t.TempDir(), "root"))

	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	for _, dir := range []string{paths.Root, paths.State} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected %s to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("expected %s to be a directory", dir)
		}
	}

	// Idempotent.
	if err := paths.EnsureDirectories(); err != nil {
		t.Errorf("second EnsureDirectories failed: %v", err)
	}
}
