// Package hash computes the payload checksum stored in track headers.
package hash

import "github.com/cespare/xxhash/v2"

// Checksum returns the xxHash64 of a packed payload.
func Checksum(payload []byte) uint64 {
	return xxhash.Sum64(payload)
}

// Verify reports whether payload hashes to want.
func Verify(payload []byte, want uint64) bool {
	return xxhash.Sum64(payload) == want
}
