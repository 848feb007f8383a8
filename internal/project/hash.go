package project

import (
	"crypto/sha256"
)

// Digest is a SHA-256 hash, the same shape as source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by parts, each terminated by a zero byte:
// H(content || part1 || 0 || part2 || 0 ...). Callers keep parts in a fixed
// order.
func Combine(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p)
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
