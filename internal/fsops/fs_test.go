package fsops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRealFS_ValidateIdentifier(t *testing.T) {
	fs := &RealFS{}

	tests := []struct {
		name      string
		id        string
		wantError bool
	}{
		{name: "storage key", id: "reposel.ab12.last-selected", wantError: false},
		{name: "colon in key", id: "lorem:ipsum", wantError: false},
		{name: "empty", id: "", wantError: true},
		{name: "forward slash", id: "a/b", wantError: true},
		{name: "backslash", id: `a\b`, wantError: true},
		{name: "dot", id: ".", wantError: true},
		{name: "dot dot", id: "..", wantError: true},
		{name: "dot dot prefix", id: "..hidden", wantError: true},
		{name: "single dot prefix", id: ".hidden", wantError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fs.ValidateIdentifier(tt.id)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantError %v", tt.id, err, tt.wantError)
			}
		})
	}
}

func TestRealFS_AtomicWrite(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "value")

	if err := fs.AtomicWrite(path, []byte("first"), 0644); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}
	if err := fs.AtomicWrite(path, []byte("second"), 0600); err != nil {
		t.Fatalf("AtomicWrite overwrite failed: %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected %q, got %q", "second", string(data))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestRealFS_Exists(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()
	path := filepath.Join(dir, "file")

	exists, err := fs.Exists(path)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected file not to exist")
	}

	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	exists, err = fs.Exists(path)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}

	if err := fs.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if exists, _ := fs.Exists(path); exists {
		t.Error("expected file to be removed")
	}
}
