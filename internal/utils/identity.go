package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashExternalID derives the stored form of a third-party OAuth subject
// identifier. The raw identifier is never persisted; only this digest is,
// and the hash must be deterministic so the login fast-path can look it up
// by equality.
func HashExternalID(subjectID string) string {
	sum := sha256.Sum256([]byte(subjectID))
	return hex.EncodeToString(sum[:])
}
