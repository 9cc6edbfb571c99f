// Package state persists the user's repository selection.
//
// Selection state lives in durable key/value storage under two keys per
// workspace scope:
//
//   - <prefix>.<scope>.last-selected holds the last explicitly selected
//     repository key as a plain string.
//   - <prefix>.<scope>.repo-keys holds every explicitly selected key, in
//     selection order, as a JSON array of strings.
//
// Key concepts:
//   - SelectionState: the versioned in-memory record of both values
//   - KV: the storage abstraction (FileKV, SQLiteKV, MemoryKV)
//   - ScopeID: derives the per-workspace scope from the workspace source
//   - Store: loads and records selections; bad stored data reads as absent
package state
