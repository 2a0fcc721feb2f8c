package farcaster

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"tldr/internal/domain/entity"
	"tldr/internal/observability/metrics"
	"tldr/internal/utils/text"
)

// PageGetter fetches a page body. The fetcher package provides the
// production implementation.
type PageGetter interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// Config holds the post API settings.
type Config struct {
	// APIKey is the Neynar key. Empty disables the API step.
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Resolver turns a post URL into the post's text.
type Resolver struct {
	api   *NeynarClient
	pages PageGetter
}

// NewResolver creates a Resolver. httpClient is used for API calls and may
// be nil.
func NewResolver(cfg Config, pages PageGetter, httpClient *http.Client) *Resolver {
	r := &Resolver{pages: pages}
	if cfg.APIKey != "" {
		r.api = NewNeynarClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout, httpClient)
	}
	return r
}

// APIConfigured reports whether the structured API step is enabled.
func (r *Resolver) APIConfigured() bool {
	return r.api != nil
}

// ResolvePost returns the text of the post at rawURL, bounded to
// entity.MaxExtractedLength characters.
//
// Errors:
//   - entity.ErrInvalidPostURL: rawURL is not a post link (no network call is made)
//   - entity.ErrFetch: the scrape request failed
func (r *Resolver) ResolvePost(ctx context.Context, rawURL string) (string, error) {
	post, err := entity.ParsePostURL(rawURL)
	if err != nil {
		return "", err
	}

	if r.api != nil {
		castText, err := r.api.CastText(ctx, post.Hash)
		if err == nil {
			metrics.RecordPostResolution(metrics.StageAPI)
			return text.TruncateTrimmed(castText, entity.MaxExtractedLength), nil
		}
		slog.WarnContext(ctx, "post API lookup failed, falling back to scrape",
			slog.String("hash", post.Hash),
			slog.Any("error", err))
	}

	html, err := r.pages.FetchHTML(ctx, post.Raw)
	if err != nil {
		return "", fmt.Errorf("scrape post page: %w", err)
	}

	postText, matched := extractPostText(html)
	if matched {
		metrics.RecordPostResolution(metrics.StageScrape)
		return text.TruncateTrimmed(postText, entity.MaxExtractedLength), nil
	}

	metrics.RecordPostResolution(metrics.StagePageText)
	return postText, nil
}
