package text

import (
	"regexp"
	"strings"
)

// DefaultMaxLength is the bound NormalizeHTML applies to its output.
const DefaultMaxLength = 8000

var (
	scriptBlock = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	styleBlock  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`)
	anyTag      = regexp.MustCompile(`<[^>]*>`)
)

// NormalizeHTML turns raw HTML into a single line of plain text:
// script and style blocks are deleted with their content (leaving no gap),
// every other tag becomes a space, whitespace runs collapse to one space, and the result is
// trimmed and bounded to DefaultMaxLength runes.
//
// This is a lexical stripper. Entities are left as-is and navigation or
// footer text is kept. Applying it to its own output is a no-op.
func NormalizeHTML(html string) string {
	return NormalizeHTMLLimit(html, DefaultMaxLength)
}

// NormalizeHTMLLimit is NormalizeHTML with a caller-chosen bound.
func NormalizeHTMLLimit(html string, max int) string {
	s := scriptBlock.ReplaceAllString(html, "")
	s = styleBlock.ReplaceAllString(s, "")
	s = anyTag.ReplaceAllString(s, " ")
	s = CollapseWhitespace(s)
	return TruncateTrimmed(s, max)
}

// CollapseWhitespace replaces every whitespace run with a single space and
// trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
