// Package normalize provides utilities for normalizing user-supplied text.
//
// All case-insensitive behavior in the catalog (unique username/email indexes,
// author/genre filters, title search) goes through this package so that every
// comparison folds case the same way.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Fold returns s case-folded for caseless comparison.
// Unicode case folding handles more than ASCII lowercase (e.g. İ, ß).
func Fold(s string) string {
	return folder.String(s)
}

// Email normalizes an email address for storage and index lookups.
func Email(s string) string {
	return Fold(strings.TrimSpace(s))
}

// Username normalizes a username for index lookups.
// Usernames are stored as entered but indexed case-insensitively.
func Username(s string) string {
	return Fold(strings.TrimSpace(s))
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// EqualFold reports whether a and b are equal under case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}
