package workspace

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/reposel/internal/fsops"
)

// FileSource reads a workspace response snapshot from disk. The file holds the
// query's data object in YAML or JSON (JSON is valid YAML).
type FileSource struct {
	fs   fsops.FS
	path string
}

// NewFileSource creates a FileSource reading path.
func NewFileSource(fs fsops.FS, path string) *FileSource {
	return &FileSource{fs: fs, path: path}
}

// Path returns the snapshot path.
func (s *FileSource) Path() string {
	return s.path
}

// Fetch reads and flattens the snapshot.
func (s *FileSource) Fetch(ctx context.Context) ([]Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read workspace file: %w", ErrQueryFailed, err)
	}

	var doc struct {
		WorkspaceOrError *Response `yaml:"workspaceOrError"`
		Response         `yaml:",inline"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse workspace file: %w", ErrQueryFailed, err)
	}

	if doc.WorkspaceOrError != nil {
		return Flatten(doc.WorkspaceOrError), nil
	}
	return Flatten(&doc.Response), nil
}
