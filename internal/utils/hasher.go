package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash generates a SHA-256 hash of the input string
func Hash(input string) string {
	return HashBytes([]byte(input))
}

// HashBytes generates a SHA-256 hash of data
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ShortHash returns the first n hex characters of Hash(input).
func ShortHash(input string, n int) string {
	h := Hash(input)
	if n <= 0 || n > len(h) {
		return h
	}
	return h[:n]
}
