package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const snapshotFileExtension = ".json"

// normalizeBaseURL folds case, whitespace and trailing slashes.
func normalizeBaseURL(baseURL string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(baseURL)), "/")
}

// KeyForBaseURL returns the snapshot file name stem for the roster fetched
// from baseURL.
func KeyForBaseURL(baseURL string) string {
	sum := sha256.Sum256([]byte("roster-snapshot:" + normalizeBaseURL(baseURL)))
	return hex.EncodeToString(sum[:])
}
