package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// Digest returns the hex sha256 of an uploaded file. Import idempotency keys
// on this value together with the material class and period.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Matcher compares uploaded data against a previously recorded digest.
type Matcher struct {
	expected string
}

func NewMatcher(expected string) *Matcher {
	return &Matcher{expected: expected}
}

// Match reports whether the data hashes to the expected digest.
func (m *Matcher) Match(data []byte) (bool, error) {
	if m.expected == "" {
		return false, errors.New("expected digest is not set")
	}
	return Digest(data) == m.expected, nil
}
