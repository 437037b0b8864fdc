package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns s in NFC form with surrounding whitespace removed and
// internal runs of whitespace collapsed to a single space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Clamp normalizes s and truncates it to at most maxRunes runes. Truncation
// never splits a multi-byte sequence. A non-positive limit returns "".
func Clamp(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	s = Normalize(s)
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	count := 0
	for i := range s {
		if count == maxRunes {
			return strings.TrimSpace(s[:i])
		}
		count++
	}
	return s
}
