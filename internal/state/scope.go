package state

import (
	"crypto/sha256"
	"encoding/hex"
)

// scopeIDLength is the number of hex characters kept from the digest.
const scopeIDLength = 16

// ScopeID computes a stable storage scope from a workspace source descriptor
// (an endpoint URL or snapshot path). Selections recorded against one
// workspace are never read back for another.
func ScopeID(descriptor string) string {
	hash := sha256.Sum256([]byte(descriptor))
	return hex.EncodeToString(hash[:])[:scopeIDLength]
}
