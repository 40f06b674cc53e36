package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashRefreshToken returns the SHA256 hash of a refresh token. Only the
// hash is ever persisted; the raw token lives in the client cookie.
func HashRefreshToken(token string) string {
	hasher := sha256.New()
	hasher.Write([]byte(token))
	return hex.EncodeToString(hasher.Sum(nil))
}

// CompareRefreshTokenHash compares a raw refresh token with its stored hash.
func CompareRefreshTokenHash(token string, storedHash string) bool {
	return HashRefreshToken(token) == storedHash
}
