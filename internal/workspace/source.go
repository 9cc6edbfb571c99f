// Package workspace models the repositories known to a dashboard workspace and
// the collaborators that fetch them.
//
// A Source answers the workspace query. GraphQLSource talks to a live server;
// FileSource reads a saved snapshot of the same payload. Both return the
// flattened, deduplicated known set in server order.
package workspace

import (
	"context"
	"errors"
)

var (
	// ErrQueryFailed indicates the workspace query could not be answered.
	ErrQueryFailed = errors.New("workspace query failed")

	// ErrNoSource indicates neither an endpoint nor a snapshot file is configured.
	ErrNoSource = errors.New("no workspace source configured")
)

// Source fetches the known repository set.
type Source interface {
	// Fetch returns every known repository in server order.
	Fetch(ctx context.Context) ([]Repository, error)
}

// StaticSource is a Source over a fixed repository list.
type StaticSource []Repository

// Fetch returns a copy of the static list.
func (s StaticSource) Fetch(ctx context.Context) ([]Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Repository, len(s))
	copy(out, s)
	return out, nil
}
