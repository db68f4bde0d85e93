package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the sha-256 content hash of the graph's canonical JSON
// encoding, as 64 hex characters. Sanitize preserves input order, so equal
// inputs hash equally; the pipeline uses this as its memoization key.
func Hash(g Graph) string {
	data, _ := json.Marshal(g)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
