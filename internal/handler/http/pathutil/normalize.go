// Package pathutil maps request paths to a bounded set of route labels for
// metrics and span names.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// UnmatchedPath labels every path that is not a known route.
const UnmatchedPath = "/:unmatched"

// staticPaths are the routes served by the API.
var staticPaths = map[string]struct{}{
	"/":              {},
	"/api/summarize": {},
	"/health":        {},
	"/live":          {},
	"/metrics":       {},
}

// pathPatterns defines the patterns for routes with dynamic suffixes.
// Pre-compiled at initialization.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/swagger(/.*)?$`), Template: "/swagger/*"},
}

// NormalizePath normalizes URL paths to prevent metrics label cardinality
// explosion. Known routes pass through, documentation assets collapse to
// one template and anything else (scanners, typos) becomes UnmatchedPath.
//
// Examples:
//
//	NormalizePath("/api/summarize")          // "/api/summarize"
//	NormalizePath("/api/summarize/")         // "/api/summarize"
//	NormalizePath("/health?verbose=1")       // "/health"
//	NormalizePath("/swagger/index.html")     // "/swagger/*"
//	NormalizePath("/wp-login.php")           // "/:unmatched"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return UnmatchedPath
}

// GetExpectedCardinality returns the number of distinct labels NormalizePath
// can produce.
func GetExpectedCardinality() int {
	return len(staticPaths) + len(pathPatterns) + 1
}
