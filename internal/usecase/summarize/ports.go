// Package summarize implements the summarization pipeline: it routes a
// request to the right extractor, asks a backend for a summary and computes
// the length statistics of the result.
package summarize

import (
	"context"

	"tldr/internal/domain/entity"
)

// PageFetcher turns a web page URL into bounded plain text.
//
// Security considerations:
//   - Implementations MUST prevent Server-Side Request Forgery (SSRF) attacks
//   - Implementations MUST enforce size limits and timeouts
//
// Errors:
//   - entity.ErrInvalidInput: URL is malformed or not allowed
//   - entity.ErrFetch: transport failure or non-success status
type PageFetcher interface {
	FetchAndExtract(ctx context.Context, url string) (string, error)
}

// PostResolver turns a social post URL into the post's text.
//
// Errors:
//   - entity.ErrInvalidPostURL: the URL is not a post link
//   - entity.ErrFetch: every retrieval path failed at the transport level
type PostResolver interface {
	ResolvePost(ctx context.Context, url string) (string, error)
}

// Backend is one summarization provider.
// Implementations own the wire format; they receive the source text with the
// instruction and generation budget derived from the length preference.
type Backend interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Summarize returns the generated summary. An empty string is not an
	// error here; the Dispatcher reports it as entity.ErrEmptyResult.
	Summarize(ctx context.Context, req entity.BackendRequest) (string, error)
}
