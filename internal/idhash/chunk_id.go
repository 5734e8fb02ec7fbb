package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeChunkID computes a deterministic chunk id using SHA256.
// Formula: SHA256(tick|op|seq|index)
// seq is the registry-wide chunk sequence number of the operation that
// created the chunk; index distinguishes multiple outputs of one operation.
// Returns hex-encoded hash (64 characters).
func ComputeChunkID(tick, op string, seq uint64, index int) string {
	data := fmt.Sprintf("%s|%s|%d|%d",
		tick,
		op,
		seq,
		index,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
