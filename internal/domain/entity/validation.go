package entity

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// ValidateURL validates the format of a URL.
// It checks that the URL is well-formed, uses HTTP/HTTPS scheme, and has a valid host.
// Network-level checks (DNS, private ranges) belong to the fetcher.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	// DoS protection: enforce maximum URL length
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "URL is invalid"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Hostname() == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	return nil
}

// postURLPattern matches Warpcast/Farcaster post links. The 64-hex hash must be
// followed by the end of the string or a path/query/fragment delimiter, so 63
// and 65 character hashes are both rejected.
var postURLPattern = regexp.MustCompile(
	`^https?://(?:www\.)?(?:warpcast\.com|farcaster\.xyz)/([^/?#\s]+)/0x([a-fA-F0-9]{64})(?:[/?#]\S*)?$`)

// PostURL is a parsed social-post link.
type PostURL struct {
	Raw    string
	Author string
	// Hash is the post identifier: "0x" followed by 64 hex characters.
	Hash string
}

// ParsePostURL validates raw against the post-link shape and extracts its parts.
// Returns ErrInvalidPostURL when the link does not match.
func ParsePostURL(raw string) (PostURL, error) {
	trimmed := strings.TrimSpace(raw)
	m := postURLPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return PostURL{}, ErrInvalidPostURL
	}
	return PostURL{
		Raw:    trimmed,
		Author: m[1],
		Hash:   "0x" + m[2],
	}, nil
}

// IsValidPostURL reports whether raw is a well-formed post link.
func IsValidPostURL(raw string) bool {
	_, err := ParsePostURL(raw)
	return err == nil
}
