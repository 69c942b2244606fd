// Package certid mints human-readable certificate identifiers of the form
// CERT-XXXXXXXX, where X is an uppercase letter or digit. Identifiers are
// random per call and unique by convention only (36^8 space); nothing here
// checks for collisions.
package certid

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

const (
	prefix    = "CERT-"
	suffixLen = 8
	alphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var idPattern = regexp.MustCompile(`^CERT-[A-Z0-9]{8}$`)

// New returns a fresh certificate identifier.
func New() (string, error) {
	b := make([]byte, suffixLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return prefix + string(b), nil
}

// Valid reports whether s has the CERT-XXXXXXXX shape. This is a format
// check, not an existence check.
func Valid(s string) bool {
	return idPattern.MatchString(s)
}
