package workspace

import (
	"errors"
	"fmt"
	"strings"
)

// keySeparator joins repository and location names in a Key.
const keySeparator = ":"

// ErrInvalidKey indicates a string is not a well-formed repository key.
var ErrInvalidKey = errors.New("invalid repository key")

// Key is the "name:location" identifier of a repository. It is used both for
// lookups and as the token persisted in durable storage.
//
// Location names may contain ':' themselves, so the first separator splits
// the key. Repository names never contain ':'.
type Key string

// NewKey builds the key for repository name served from location.
func NewKey(name, location string) Key {
	return Key(name + keySeparator + location)
}

// ParseKey validates s and returns it as a Key.
func ParseKey(s string) (Key, error) {
	name, location, ok := strings.Cut(s, keySeparator)
	if !ok {
		return "", fmt.Errorf("%w: %q is missing %q", ErrInvalidKey, s, keySeparator)
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(location) == "" {
		return "", fmt.Errorf("%w: %q must be name%slocation", ErrInvalidKey, s, keySeparator)
	}
	if strings.TrimSpace(s) != s {
		return "", fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidKey, s)
	}
	return Key(s), nil
}

// Name returns the repository name part of the key.
func (k Key) Name() string {
	name, _, _ := strings.Cut(string(k), keySeparator)
	return name
}

// Location returns the code location part of the key.
func (k Key) Location() string {
	_, location, _ := strings.Cut(string(k), keySeparator)
	return location
}

func (k Key) String() string {
	return string(k)
}
