package scrape

import "strings"

// Normalize collapses every run of whitespace, including newlines, tabs and
// non-breaking spaces, to a single ASCII space and trims both ends.
// Normalize is idempotent.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
