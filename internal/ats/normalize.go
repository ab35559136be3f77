package ats

import (
	"strings"
	"unicode"
)

// Normalize lowercases text and drops every rune that is neither a word rune
// nor whitespace.
func Normalize(text string) string {
	return strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, text)
}

// isWordRune matches the \w class: letters, digits and underscore
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
