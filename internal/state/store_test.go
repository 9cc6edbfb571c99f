package state

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"github.com/danieljhkim/reposel/internal/fsops"
	"github.com/danieljhkim/reposel/internal/workspace"
)

func newTestStore(t *testing.T, kv KV) *Store {
	t.Helper()
	return NewStore(kv, "reposel", "scope1", zaptest.NewLogger(t))
}

func TestStore_KeyNames(t *testing.T) {
	s := newTestStore(t, NewMemoryKV())

	if s.LastSelectedKey() != "reposel.scope1.last-selected" {
		t.Errorf("unexpected last-selected key %q", s.LastSelectedKey())
	}
	if s.RepoKeysKey() != "reposel.scope1.repo-keys" {
		t.Errorf("unexpected repo-keys key %q", s.RepoKeysKey())
	}
}

func TestStore_LoadAbsent(t *testing.T) {
	s := newTestStore(t, NewMemoryKV())

	st, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !st.IsEmpty() {
		t.Errorf("expected empty state, got %+v", st)
	}
}

func TestStore_LoadMalformedIsAbsent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		lastSelected string
		repoKeys     string
		wantLast     workspace.Key
		wantSelected []workspace.Key
	}{
		{
			name:         "non-json repo keys",
			repoKeys:     "foo:bar",
			wantSelected: []workspace.Key{},
		},
		{
			name:         "malformed last selected keeps valid repo keys",
			lastSelected: "garbage",
			repoKeys:     `["foo:bar"]`,
			wantSelected: []workspace.Key{"foo:bar"},
		},
		{
			name:         "whitespace around keys",
			lastSelected: "foo:bar\n",
			repoKeys:     `["foo:bar ", "lorem:ipsum"]`,
			wantSelected: []workspace.Key{"lorem:ipsum"},
		},
		{
			name:         "valid last selected keeps despite bad repo keys",
			lastSelected: "lorem:ipsum",
			repoKeys:     `{not json`,
			wantLast:     "lorem:ipsum",
			wantSelected: []workspace.Key{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV()
			s := newTestStore(t, kv)
			if tt.lastSelected != "" {
				_ = kv.Set(ctx, s.LastSelectedKey(), tt.lastSelected)
			}
			if tt.repoKeys != "" {
				_ = kv.Set(ctx, s.RepoKeysKey(), tt.repoKeys)
			}

			st, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("Load must not fail on malformed data: %v", err)
			}
			if st.LastSelected != tt.wantLast {
				t.Errorf("LastSelected = %q, want %q", st.LastSelected, tt.wantLast)
			}
			if diff := cmp.Diff(tt.wantSelected, st.Selected); diff != "" {
				t.Errorf("Selected mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_RecordSelection(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := newTestStore(t, kv)

	if _, err := s.RecordSelection(ctx, "foo:bar"); err != nil {
		t.Fatalf("RecordSelection failed: %v", err)
	}
	st, err := s.RecordSelection(ctx, "lorem:ipsum")
	if err != nil {
		t.Fatalf("RecordSelection failed: %v", err)
	}

	if st.LastSelected != "lorem:ipsum" {
		t.Errorf("expected LastSelected=lorem:ipsum, got %q", st.LastSelected)
	}

	last, _, _ := kv.Get(ctx, s.LastSelectedKey())
	if last != "lorem:ipsum" {
		t.Errorf("stored last-selected = %q, want plain key string", last)
	}
	keys, _, _ := kv.Get(ctx, s.RepoKeysKey())
	if keys != `["foo:bar","lorem:ipsum"]` {
		t.Errorf("stored repo-keys = %s", keys)
	}

	// Selecting an existing key again only moves last-selected.
	st, err = s.RecordSelection(ctx, "foo:bar")
	if err != nil {
		t.Fatalf("RecordSelection failed: %v", err)
	}
	want := []workspace.Key{"foo:bar", "lorem:ipsum"}
	if diff := cmp.Diff(want, st.Selected); diff != "" {
		t.Errorf("Selected mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_RecordSelectionRepairsMalformedState(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := newTestStore(t, kv)
	_ = kv.Set(ctx, s.RepoKeysKey(), "not-json")

	if _, err := s.RecordSelection(ctx, "foo:bar"); err != nil {
		t.Fatalf("RecordSelection failed: %v", err)
	}

	keys, _, _ := kv.Get(ctx, s.RepoKeysKey())
	if keys != `["foo:bar"]` {
		t.Errorf("expected malformed value to be replaced, got %s", keys)
	}
}

func TestStore_ForgetAndClear(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := newTestStore(t, kv)

	_, _ = s.RecordSelection(ctx, "a:x")
	_, _ = s.RecordSelection(ctx, "b:y")

	removed, err := s.Forget(ctx, "b:y")
	if err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	if !removed {
		t.Error("expected Forget to report removal")
	}
	if _, ok, _ := kv.Get(ctx, s.LastSelectedKey()); ok {
		t.Error("expected last-selected to be deleted when it was forgotten")
	}

	removed, err = s.Forget(ctx, "missing:key")
	if err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	if removed {
		t.Error("expected Forget of unknown key to report false")
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, s.RepoKeysKey()); ok {
		t.Error("expected repo-keys to be deleted")
	}
}

func TestStore_ScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	a := NewStore(kv, "reposel", ScopeID("http://a/graphql"), nil)
	b := NewStore(kv, "reposel", ScopeID("http://b/graphql"), nil)

	if _, err := a.RecordSelection(ctx, "foo:bar"); err != nil {
		t.Fatalf("RecordSelection failed: %v", err)
	}

	st, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !st.IsEmpty() {
		t.Errorf("expected scope b to be empty, got %+v", st)
	}
}

type failingKV struct{ err error }

func (f failingKV) Get(ctx context.Context, key string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(ctx context.Context, key, value string) error          { return f.err }
func (f failingKV) Delete(ctx context.Context, key string) error              { return f.err }

func TestStore_StorageErrorsPropagate(t *testing.T) {
	boom := errors.New("disk on fire")
	s := newTestStore(t, failingKV{err: boom})

	if _, err := s.Load(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected storage error from Load, got %v", err)
	}
	if _, err := s.RecordSelection(context.Background(), "foo:bar"); !errors.Is(err, boom) {
		t.Errorf("expected storage error from RecordSelection, got %v", err)
	}
}

func TestStore_FileKVBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	kv := NewFileKV(fsops.NewRealFS(), dir)
	s := newTestStore(t, kv)

	if _, err := s.RecordSelection(ctx, "foo:bar"); err != nil {
		t.Fatalf("RecordSelection failed: %v", err)
	}

	// A fresh store over the same directory sees the selection.
	reloaded, err := newTestStore(t, NewFileKV(fsops.NewRealFS(), dir)).Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if reloaded.LastSelected != "foo:bar" {
		t.Errorf("expected persisted LastSelected=foo:bar, got %q", reloaded.LastSelected)
	}
	if diff := cmp.Diff([]workspace.Key{"foo:bar"}, reloaded.Selected); diff != "" {
		t.Errorf("Selected mismatch (-want +got):\n%s", diff)
	}
}
