package selection

import "errors"

var (
	// ErrUnknownRepository indicates a key that is not in the known set.
	ErrUnknownRepository = errors.New("unknown repository")

	// ErrNotSelected indicates a key that is not in the persisted selection.
	ErrNotSelected = errors.New("repository not selected")
)
