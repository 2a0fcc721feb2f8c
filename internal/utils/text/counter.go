// Package text provides the character counting and HTML-to-text helpers shared
// by the fetcher, the post resolver and the statistics calculator.
// All lengths in this package are measured in Unicode code points (runes).
package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Multi-byte characters such as CJK text and emoji count as one each.
//
// Examples:
//
//	CountRunes("hello")     // 5
//	CountRunes("日本語")     // 3
//	CountRunes("Hello👋")   // 6
//	CountRunes("")          // 0
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// Truncate returns the first max runes of s. The result never splits a
// multi-byte character. A non-positive max yields "".
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// TruncateTrimmed is Truncate followed by trimming trailing whitespace,
// so a cut that lands on a space does not leave it dangling.
func TruncateTrimmed(s string, max int) string {
	return strings.TrimRightFunc(Truncate(s, max), unicode.IsSpace)
}
