package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danieljhkim/reposel/internal/workspace"
)

// ErrMalformed indicates a stored value could not be decoded.
var ErrMalformed = errors.New("malformed stored value")

// keysEnvelope is the versioned form of the repo-keys value. Writers emit the
// bare array for compatibility; readers accept either form.
type keysEnvelope struct {
	Version int      `json:"version"`
	Keys    []string `json:"keys"`
}

// encodeKeys serializes selected keys as a JSON array of strings.
func encodeKeys(keys []workspace.Key) (string, error) {
	raw := make([]string, len(keys))
	for i, k := range keys {
		raw[i] = k.String()
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("failed to encode repo keys: %w", err)
	}
	return string(data), nil
}

// decodeKeys parses a stored repo-keys value. It returns the schema version
// the value was written with, the well-formed keys (deduplicated, in order)
// and the raw entries that were dropped as malformed.
func decodeKeys(value string) (version int, keys []workspace.Key, dropped []string, err error) {
	data := bytes.TrimSpace([]byte(value))

	var raw []string
	switch {
	case len(data) > 0 && data[0] == '[':
		if err := json.Unmarshal(data, &raw); err != nil {
			return 0, nil, nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		version = CurrentVersion
	case len(data) > 0 && data[0] == '{':
		var env keysEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return 0, nil, nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		if env.Version < 1 {
			return 0, nil, nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, env.Version)
		}
		raw, version = env.Keys, env.Version
	default:
		return 0, nil, nil, fmt.Errorf("%w: repo keys must be a JSON array", ErrMalformed)
	}

	seen := make(map[workspace.Key]bool, len(raw))
	keys = make([]workspace.Key, 0, len(raw))
	for _, s := range raw {
		k, err := workspace.ParseKey(s)
		if err != nil {
			dropped = append(dropped, s)
			continue
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}

	return version, keys, dropped, nil
}
