package state

import (
	"slices"

	"github.com/danieljhkim/reposel/internal/workspace"
)

// CurrentVersion is the SelectionState schema version written by this build.
const CurrentVersion = 1

// SelectionState is the persisted record of explicit repository choices.
type SelectionState struct {
	// Version is the schema version the record was read as.
	Version int `json:"version"`

	// LastSelected is the most recent explicit selection; empty when unset.
	LastSelected workspace.Key `json:"lastSelected,omitempty"`

	// Selected is every repository the user chose to keep visible, in the
	// order they were first selected. Keys are unique.
	Selected []workspace.Key `json:"selected"`
}

// NewSelectionState creates an empty SelectionState.
func NewSelectionState() *SelectionState {
	return &SelectionState{
		Version:  CurrentVersion,
		Selected: []workspace.Key{},
	}
}

// IsEmpty reports whether no selection has been recorded.
func (s *SelectionState) IsEmpty() bool {
	return s == nil || (s.LastSelected == "" && len(s.Selected) == 0)
}

// Contains reports whether key is in the selected set.
func (s *SelectionState) Contains(key workspace.Key) bool {
	return s != nil && slices.Contains(s.Selected, key)
}

// Select records key as the last selection and appends it to the selected
// set if it is not already there.
func (s *SelectionState) Select(key workspace.Key) {
	s.LastSelected = key
	if !s.Contains(key) {
		s.Selected = append(s.Selected, key)
	}
}

// Remove drops key from the selected set and clears LastSelected if it
// pointed at key. It reports whether anything changed.
func (s *SelectionState) Remove(key workspace.Key) bool {
	changed := false
	if s.LastSelected == key {
		s.LastSelected = ""
		changed = true
	}
	if i := slices.Index(s.Selected, key); i >= 0 {
		s.Selected = slices.Delete(s.Selected, i, i+1)
		changed = true
	}
	return changed
}
