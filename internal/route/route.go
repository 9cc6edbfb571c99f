// Package route parses and builds workspace-scoped dashboard paths.
//
// Workspace-scoped routes address a repository as
//
//	/locations/{repository}@{location}[/...]
//
// where both names are path-escaped.
package route

import (
	"net/url"
	"strings"

	"github.com/danieljhkim/reposel/internal/workspace"
)

const (
	locationsSegment = "locations"
	addressSeparator = "@"
)

// Address is a repository reference taken from the current route.
type Address struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Key returns the repository key for the address.
func (a Address) Key() workspace.Key {
	return workspace.NewKey(a.Name, a.Location)
}

// ParsePath extracts the repository address from path. The second result is
// false when path is not a workspace-scoped route or its address is malformed.
// Query strings and fragments are ignored.
func ParsePath(path string) (Address, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 || segments[0] != locationsSegment {
		return Address{}, false
	}

	raw, err := url.PathUnescape(segments[1])
	if err != nil {
		return Address{}, false
	}

	// Repository names never contain '@'; location names may.
	name, location, ok := strings.Cut(raw, addressSeparator)
	if !ok || name == "" || location == "" {
		return Address{}, false
	}

	return Address{Name: name, Location: location}, true
}

// RepoPath returns the root path of a repository.
func RepoPath(key workspace.Key) string {
	return "/" + locationsSegment + "/" + url.PathEscape(key.Name()+addressSeparator+key.Location())
}

// JobPath returns the path of a job inside a repository.
func JobPath(key workspace.Key, job string) string {
	return RepoPath(key) + "/jobs/" + url.PathEscape(job)
}
