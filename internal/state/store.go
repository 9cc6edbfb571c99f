package state

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/reposel/internal/workspace"
)

const (
	lastSelectedSuffix = "last-selected"
	repoKeysSuffix     = "repo-keys"
)

// Store reads and writes SelectionState for one workspace scope.
type Store struct {
	kv     KV
	prefix string
	scope  string
	logger *zap.Logger
}

// NewStore creates a Store writing keys "<prefix>.<scope>.*" into kv.
func NewStore(kv KV, prefix, scope string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		kv:     kv,
		prefix: prefix,
		scope:  scope,
		logger: logger.With(zap.String("scope", scope)),
	}
}

// LastSelectedKey is the storage key holding the last selected repository.
func (s *Store) LastSelectedKey() string {
	return s.prefix + "." + s.scope + "." + lastSelectedSuffix
}

// RepoKeysKey is the storage key holding the selected repository list.
func (s *Store) RepoKeysKey() string {
	return s.prefix + "." + s.scope + "." + repoKeysSuffix
}

// Load reads the selection state. Unset keys and malformed values both read
// as absent; only storage failures are returned as errors.
func (s *Store) Load(ctx context.Context) (*SelectionState, error) {
	st := NewSelectionState()

	last, ok, err := s.kv.Get(ctx, s.LastSelectedKey())
	if err != nil {
		return nil, fmt.Errorf("failed to load last selected repository: %w", err)
	}
	if ok {
		key, err := workspace.ParseKey(last)
		if err != nil {
			s.logger.Warn("ignoring malformed last selected repository",
				zap.String("value", last),
				zap.Error(err),
			)
		} else {
			st.LastSelected = key
		}
	}

	raw, ok, err := s.kv.Get(ctx, s.RepoKeysKey())
	if err != nil {
		return nil, fmt.Errorf("failed to load selected repositories: %w", err)
	}
	if ok {
		version, keys, dropped, err := decodeKeys(raw)
		if err != nil {
			s.logger.Warn("ignoring malformed selected repositories",
				zap.String("value", raw),
				zap.Error(err),
			)
		} else {
			st.Version = version
			st.Selected = keys
			if len(dropped) > 0 {
				s.logger.Warn("dropped malformed selected repository keys",
					zap.Strings("keys", dropped),
				)
			}
		}
	}

	return st, nil
}

// Save writes st. Empty values delete their key rather than storing "".
func (s *Store) Save(ctx context.Context, st *SelectionState) error {
	if st.LastSelected == "" {
		if err := s.kv.Delete(ctx, s.LastSelectedKey()); err != nil {
			return fmt.Errorf("failed to clear last selected repository: %w", err)
		}
	} else if err := s.kv.Set(ctx, s.LastSelectedKey(), st.LastSelected.String()); err != nil {
		return fmt.Errorf("failed to save last selected repository: %w", err)
	}

	if len(st.Selected) == 0 {
		if err := s.kv.Delete(ctx, s.RepoKeysKey()); err != nil {
			return fmt.Errorf("failed to clear selected repositories: %w", err)
		}
		return nil
	}

	encoded, err := encodeKeys(st.Selected)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.RepoKeysKey(), encoded); err != nil {
		return fmt.Errorf("failed to save selected repositories: %w", err)
	}
	return nil
}

// RecordSelection persists an explicit user selection of key: it becomes the
// last selected repository and is appended to the selected list if absent.
func (s *Store) RecordSelection(ctx context.Context, key workspace.Key) (*SelectionState, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	st.Select(key)
	st.Version = CurrentVersion

	if err := s.Save(ctx, st); err != nil {
		return nil, err
	}
	s.logger.Debug("recorded repository selection", zap.String("key", key.String()))
	return st, nil
}

// Forget removes key from the persisted selection. It reports whether the key
// was present.
func (s *Store) Forget(ctx context.Context, key workspace.Key) (bool, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	if !st.Remove(key) {
		return false, nil
	}
	if err := s.Save(ctx, st); err != nil {
		return false, err
	}
	return true, nil
}

// Clear deletes all persisted selection state for the scope.
func (s *Store) Clear(ctx context.Context) error {
	return s.Save(ctx, NewSelectionState())
}
