package state

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danieljhkim/reposel/internal/workspace"
)

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		wantErr     bool
		wantVersion int
		wantKeys    []workspace.Key
		wantDropped []string
	}{
		{
			name:        "bare array",
			value:       `["foo:bar","lorem:ipsum"]`,
			wantVersion: CurrentVersion,
			wantKeys:    []workspace.Key{"foo:bar", "lorem:ipsum"},
		},
		{
			name:        "versioned envelope",
			value:       `{"version": 2, "keys": ["foo:bar"]}`,
			wantVersion: 2,
			wantKeys:    []workspace.Key{"foo:bar"},
		},
		{
			name:        "empty array",
			value:       `[]`,
			wantVersion: CurrentVersion,
			wantKeys:    []workspace.Key{},
		},
		{
			name:        "duplicates collapse",
			value:       `["foo:bar","foo:bar"]`,
			wantVersion: CurrentVersion,
			wantKeys:    []workspace.Key{"foo:bar"},
		},
		{
			name:        "malformed entries dropped",
			value:       `["foo:bar","nocolon",""]`,
			wantVersion: CurrentVersion,
			wantKeys:    []workspace.Key{"foo:bar"},
			wantDropped: []string{"nocolon", ""},
		},
		{name: "not json", value: `foo:bar`, wantErr: true},
		{name: "truncated array", value: `["foo:bar"`, wantErr: true},
		{name: "array of numbers", value: `[1,2]`, wantErr: true},
		{name: "envelope without version", value: `{"keys":["foo:bar"]}`, wantErr: true},
		{name: "empty", value: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, keys, dropped, err := decodeKeys(tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("expected ErrMalformed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if version != tt.wantVersion {
				t.Errorf("version = %d, want %d", version, tt.wantVersion)
			}
			if diff := cmp.Diff(tt.wantKeys, keys); diff != "" {
				t.Errorf("keys mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantDropped, dropped); diff != "" {
				t.Errorf("dropped mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeKeys(t *testing.T) {
	got, err := encodeKeys([]workspace.Key{"foo:bar", "lorem:ipsum"})
	if err != nil {
		t.Fatalf("encodeKeys failed: %v", err)
	}
	if got != `["foo:bar","lorem:ipsum"]` {
		t.Errorf("unexpected encoding %s", got)
	}
}
