package service

import (
	"strings"
	"unicode/utf8"
)

// Normalize collapses every whitespace run, newlines included, into a single
// space and trims both ends.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// BuildInput prepends prefix to text and cuts the result to at most maxChars
// characters. The cut ignores word and sentence boundaries.
func BuildInput(text, prefix string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}

	input := prefix + text
	if utf8.RuneCountInString(input) <= maxChars {
		return input
	}

	count := 0
	for i := range input {
		if count == maxChars {
			return input[:i]
		}
		count++
	}
	return input
}

// CharCount counts characters as runes so multi-byte text is not over-counted.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}
