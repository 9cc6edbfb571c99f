// Package selection decides which repository the navigation shows.
//
// Resolve is a pure function of the known repository set, the repository
// addressed by the current route, and the persisted selection state. Service
// wires it to a workspace Source and a state Store and records explicit
// selections.
package selection

import (
	"github.com/danieljhkim/reposel/internal/route"
	"github.com/danieljhkim/reposel/internal/state"
	"github.com/danieljhkim/reposel/internal/workspace"
)

// Reason records which rule produced the active selection.
type Reason string

const (
	// ReasonURL means the current route named a known repository.
	ReasonURL Reason = "url"

	// ReasonLastSelected means the persisted last selection was used.
	ReasonLastSelected Reason = "last-selected"

	// ReasonSelectedKeys means the first known key of the persisted selected
	// list was used.
	ReasonSelectedKeys Reason = "selected-keys"

	// ReasonDefault means the first known repository was used.
	ReasonDefault Reason = "default"

	// ReasonNone means no repository is known.
	ReasonNone Reason = "none"
)

// Active is the outcome of a resolution.
type Active struct {
	// Repository is the active repository, nil when nothing is known.
	Repository *workspace.Repository `json:"repository"`
	Reason     Reason                `json:"reason"`
}

// Found reports whether a repository is active.
func (a Active) Found() bool {
	return a.Repository != nil
}

// Key returns the active repository's key, or "" when none is active.
func (a Active) Key() workspace.Key {
	if a.Repository == nil {
		return ""
	}
	return a.Repository.Key()
}

// Resolve picks the active repository.
//
// In priority order: the route's repository if known; the persisted last
// selection if known; the first known key of the persisted selected list;
// the first known repository in server order. An empty known set yields no
// selection. The result is always a member of known.
//
// When several persisted selected keys are known only the first is used.
// This mirrors the dashboard's single-repository navigation and is expected
// to change if multi-repository display lands.
func Resolve(known []workspace.Repository, url *route.Address, persisted *state.SelectionState) Active {
	if len(known) == 0 {
		return Active{Reason: ReasonNone}
	}

	if url != nil {
		if repo := workspace.Find(known, url.Key()); repo != nil {
			return Active{Repository: repo, Reason: ReasonURL}
		}
	}

	if persisted != nil {
		if persisted.LastSelected != "" {
			if repo := workspace.Find(known, persisted.LastSelected); repo != nil {
				return Active{Repository: repo, Reason: ReasonLastSelected}
			}
		}
		for _, key := range persisted.Selected {
			if repo := workspace.Find(known, key); repo != nil {
				return Active{Repository: repo, Reason: ReasonSelectedKeys}
			}
		}
	}

	return Active{Repository: &known[0], Reason: ReasonDefault}
}
