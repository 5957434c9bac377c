package ris

import (
	"strings"
	"unicode"
)

// DefaultNoteLimit caps note bodies, in runes, when no limit is configured.
const DefaultNoteLimit = 30000

// TruncationMarker is appended to truncated note bodies.
const TruncationMarker = " [...]"

// Truncate shortens text to at most limit runes plus the marker. It cuts at
// the last whitespace found in the final fifth of the limit; without one it
// cuts at the limit. Text within the limit is returned unchanged.
func Truncate(text string, limit int) string {
	r := []rune(text)
	if limit <= 0 || len(r) <= limit {
		return text
	}

	cut := limit
	for i := limit; i >= limit-limit/5; i-- {
		if unicode.IsSpace(r[i]) {
			cut = i
			break
		}
	}

	return strings.TrimRightFunc(string(r[:cut]), unicode.IsSpace) + TruncationMarker
}
