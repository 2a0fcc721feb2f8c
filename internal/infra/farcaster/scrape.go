package farcaster

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tldr/internal/utils/text"
)

// postTextSelectors are tried in order against a post page.
var postTextSelectors = []string{
	`[data-testid="cast-text"]`,
	`.cast-text`,
	`[class*="cast"]`,
	`[class*="post"]`,
	`p`,
}

// minPostTextLength is the length a candidate must exceed to count as post text.
const minPostTextLength = 10

// pageTextLimit bounds the whole-page fallback.
const pageTextLimit = 4000

// extractPostText finds post text in a scraped page.
// The boolean reports whether a selector matched; when false the returned
// text is the page's normalized visible text.
func extractPostText(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		if found := matchSelectors(doc); found != "" {
			return found, true
		}
	}
	return text.NormalizeHTMLLimit(html, pageTextLimit), false
}

func matchSelectors(doc *goquery.Document) string {
	doc.Find("script, style, noscript, template").Remove()

	for _, selector := range postTextSelectors {
		matches := doc.Find(selector)
		// Innermost matches first, so a wrapper does not swallow its
		// children. A wrapper is tried only when no inner match is long enough.
		inner := matches.FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.Find(selector).Length() == 0
		})
		if found := firstLongText(inner); found != "" {
			return found
		}
		if found := firstLongText(matches.NotSelection(inner)); found != "" {
			return found
		}
	}
	return ""
}

// firstLongText returns the first candidate longer than minPostTextLength.
func firstLongText(sel *goquery.Selection) string {
	var found string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		candidate := text.CollapseWhitespace(s.Text())
		if text.CountRunes(candidate) > minPostTextLength {
			found = candidate
			return false
		}
		return true
	})
	return found
}
