// Package hash provides content hashing for cache keys.
//
// Cache keys are a cheap change detector, not a correctness boundary: a
// collision only reuses a stale cached result, it never corrupts state. A
// 64-bit non-cryptographic hash (XXH64) keeps the collision probability low
// without paying for a cryptographic digest on every keystroke-sized input.
package hash

import (
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Algorithm identifies the hashing algorithm to use.
type Algorithm string

const (
	XXH64 Algorithm = "xxh64"
)

// Hasher computes content hashes with a fixed algorithm.
type Hasher struct {
	algorithm Algorithm
}

// NewHasher creates a hasher with the specified algorithm.
func NewHasher(algorithm Algorithm) *Hasher {
	return &Hasher{algorithm: algorithm}
}

// DefaultHasher returns a hasher with the default algorithm.
func DefaultHasher() *Hasher {
	return NewHasher(XXH64)
}

// Hash computes the hex-encoded hash of the input data.
func (h *Hasher) Hash(data []byte) string {
	switch h.algorithm {
	case XXH64:
		fallthrough
	default:
		sum := xxhash.Sum64(data)
		var buf [8]byte
		for i := 0; i < 8; i++ {
			buf[i] = byte(sum >> (8 * (7 - i)))
		}
		return hex.EncodeToString(buf[:])
	}
}

// HashString computes the hash of a string.
func (h *Hasher) HashString(s string) string {
	return h.Hash([]byte(s))
}

// Key derives a cache key from an operation kind and its input text.
func (h *Hasher) Key(operation, input string) string {
	return fmt.Sprintf("%s:%s", operation, h.HashString(input))
}

var defaultHasher = DefaultHasher()

// HashString computes the hash of a string with the default hasher.
func HashString(s string) string {
	return defaultHasher.HashString(s)
}

// Key derives a cache key with the default hasher.
func Key(operation, input string) string {
	return defaultHasher.Key(operation, input)
}
