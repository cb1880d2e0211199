// Package utils provides utility functions for the adskip system.
package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash/fnv"
)

// HashText returns a SHA256 hash of the text content.
func HashText(text string) string {
	h := sha256.New()
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// FingerprintStrings returns an FNV-1a hash over the ordered concatenation
// of parts. Used to detect keyword-set changes without comparing slices.
func FingerprintStrings(parts []string) uint64 {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// TruncateHash returns a truncated hash for display purposes.
func TruncateHash(hash string, length int) string {
	if len(hash) <= length {
		return hash
	}
	return hash[:length]
}
