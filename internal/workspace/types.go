package workspace

// Repository is a named collection of jobs served from one code location.
// (Location, Name) is unique within a workspace.
type Repository struct {
	Location string   `json:"location" yaml:"location"`
	Name     string   `json:"name" yaml:"name"`
	Jobs     []string `json:"jobs" yaml:"jobs"`
}

// Key returns the repository's "name:location" key.
func (r Repository) Key() Key {
	return NewKey(r.Name, r.Location)
}

// Response mirrors the workspace query payload: every code location known to
// the server, each either loaded with its repositories or failed with an error.
type Response struct {
	LocationEntries []LocationEntry `json:"locationEntries" yaml:"locationEntries"`
}

// LocationEntry is one code location in the workspace.
type LocationEntry struct {
	ID                  string               `json:"id,omitempty" yaml:"id,omitempty"`
	Name                string               `json:"name" yaml:"name"`
	LocationOrLoadError *LocationOrLoadError `json:"locationOrLoadError" yaml:"locationOrLoadError"`
}

// LocationOrLoadError is the union returned for a code location. Typename is
// "RepositoryLocation" for a loaded location and "PythonError" for a failed
// one; a nil union means the location is still loading.
type LocationOrLoadError struct {
	Typename     string           `json:"__typename" yaml:"__typename"`
	Name         string           `json:"name,omitempty" yaml:"name,omitempty"`
	Repositories []RepositoryNode `json:"repositories,omitempty" yaml:"repositories,omitempty"`
	Message      string           `json:"message,omitempty" yaml:"message,omitempty"`
}

// RepositoryNode is a repository as returned inside a loaded location.
type RepositoryNode struct {
	ID        string         `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string         `json:"name" yaml:"name"`
	Pipelines []PipelineNode `json:"pipelines" yaml:"pipelines"`
}

// PipelineNode is a pipeline or job inside a repository.
type PipelineNode struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string `json:"name" yaml:"name"`
	IsJob bool   `json:"isJob" yaml:"isJob"`
}

// Union typenames.
const (
	TypenameRepositoryLocation = "RepositoryLocation"
	TypenamePythonError        = "PythonError"
)

// Loaded reports whether the location loaded successfully.
func (e LocationEntry) Loaded() bool {
	return e.LocationOrLoadError != nil && e.LocationOrLoadError.Typename == TypenameRepositoryLocation
}

// LoadError returns the load error message for a failed location.
func (e LocationEntry) LoadError() (string, bool) {
	if e.LocationOrLoadError == nil || e.LocationOrLoadError.Typename != TypenamePythonError {
		return "", false
	}
	return e.LocationOrLoadError.Message, true
}
