// Package id generates prefixed NanoID identifiers for cart entries, seeded
// identities, and SSE clients.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate creates a prefixed unique ID, e.g. "cart-V1StGXR8_Z5jdHi6B-myT".
// The prefix makes raw keys self-describing in the database and in logs.
//
// Fails only when the system cannot supply secure randomness.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is Generate for call sites where entropy exhaustion should
// crash the program, such as seeding tools.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
