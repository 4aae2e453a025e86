// Package normalize canonicalizes free text for comparison.
package normalize

import "strings"

// Text trims s, collapses every run of whitespace to a single space and
// lowercases the result. Text(Text(s)) == Text(s) for all s.
func Text(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
