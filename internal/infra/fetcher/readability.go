package fetcher

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"

	"tldr/internal/utils/text"
)

// Extractor turns a fetched HTML page into plain text.
// Implementations must return at most text.DefaultMaxLength characters.
type Extractor interface {
	Extract(html string, pageURL *url.URL) string
}

// StripExtractor runs the lexical normalizer over the whole page.
type StripExtractor struct{}

// Extract implements Extractor.
func (StripExtractor) Extract(html string, _ *url.URL) string {
	return text.NormalizeHTML(html)
}

// ReadabilityExtractor extracts the main article with Mozilla Readability
// before normalizing. Pages where Readability finds nothing fall back to
// StripExtractor.
type ReadabilityExtractor struct{}

// Extract implements Extractor.
func (ReadabilityExtractor) Extract(html string, pageURL *url.URL) string {
	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		slog.Debug("readability extraction failed, using full page text",
			slog.Any("error", err))
		return StripExtractor{}.Extract(html, pageURL)
	}

	// TextContent has no markup; Content is the cleaned article HTML.
	extracted := text.NormalizeHTML(article.TextContent)
	if extracted == "" {
		extracted = text.NormalizeHTML(article.Content)
	}
	if extracted == "" {
		return StripExtractor{}.Extract(html, pageURL)
	}
	return extracted
}

// NewExtractor returns the extractor registered under name.
// Unknown names yield StripExtractor.
func NewExtractor(name string) Extractor {
	if name == ExtractorReadability {
		return ReadabilityExtractor{}
	}
	return StripExtractor{}
}
