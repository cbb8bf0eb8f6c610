package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Seed64 derives a 64-bit seed from a stable key plus an ordinal.
// The same (key, n) pair always yields the same seed, which is what the
// per-record jitter draw relies on for cross-process reproducibility.
func Seed64(key string, n int) int64 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	sum := sha256.Sum256(append([]byte(key), buf[:]...))
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
