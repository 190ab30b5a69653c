// Package id generates and validates the prefixed NanoID identifiers used
// for every entity in the catalog.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity prefixes. The prefix makes an ID self-describing in logs and lets
// handlers reject references to the wrong entity kind before hitting the store.
const (
	PrefixUser   = "user"
	PrefixBook   = "book"
	PrefixReview = "rev"
)

// nanoidLength is the default NanoID length (URL-safe alphabet).
const nanoidLength = 21

// Generate creates a prefixed unique ID using NanoID
// Format: prefix-nanoid (e.g., "book-V1StGXR8_Z5jdHi6B-myT")
//
// NanoIDs are URL-friendly, compact (21 characters vs UUID's 36),
// and use a larger alphabet for better entropy per character.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
// Use this only when you're certain the system entropy is available,
// or when failure should crash the program (e.g., during initialization).
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// Valid reports whether s is a structurally valid identifier for the given
// prefix. A malformed identifier is a client error (400), distinct from a
// well-formed identifier that simply doesn't exist (404).
func Valid(prefix, s string) bool {
	rest, ok := strings.CutPrefix(s, prefix+"-")
	if !ok {
		return false
	}
	if len(rest) != nanoidLength {
		return false
	}
	for _, c := range rest {
		if !isNanoidChar(c) {
			return false
		}
	}
	return true
}

// isNanoidChar reports whether c belongs to the default NanoID alphabet.
func isNanoidChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	}
	return false
}
