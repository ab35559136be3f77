package ats

import (
	"strings"
	"unicode/utf8"
)

// Contains reports whether phrase occurs in text as a whole word or phrase.
// Both arguments are expected to be normalized.
func Contains(text, phrase string) bool {
	_, ok := nextMatch(text, phrase, 0)
	return ok
}

// Count returns the number of non-overlapping whole-phrase occurrences of
// phrase in text, scanning left to right.
func Count(text, phrase string) int {
	if phrase == "" {
		return 0
	}

	count := 0
	from := 0
	for {
		idx, ok := nextMatch(text, phrase, from)
		if !ok {
			return count
		}
		count++
		from = idx + len(phrase)
	}
}

// nextMatch finds the first boundary-respecting occurrence of phrase at or
// after byte offset from.
func nextMatch(text, phrase string, from int) (int, bool) {
	if phrase == "" {
		return 0, false
	}

	for from <= len(text)-len(phrase) {
		rel := strings.Index(text[from:], phrase)
		if rel == -1 {
			return 0, false
		}
		idx := from + rel

		if atBoundary(text, idx, idx+len(phrase)) {
			return idx, true
		}

		// Skip one rune and keep looking
		_, size := utf8.DecodeRuneInString(text[idx:])
		from = idx + size
	}

	return 0, false
}

// atBoundary checks the runes on either side of text[start:end]
func atBoundary(text string, start, end int) bool {
	if start > 0 {
		before, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(before) {
			return false
		}
	}
	if end < len(text) {
		after, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(after) {
			return false
		}
	}
	return true
}
