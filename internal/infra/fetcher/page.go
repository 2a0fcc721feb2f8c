package fetcher

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"tldr/internal/domain/entity"
	"tldr/internal/observability/metrics"
)

// PageFetcher retrieves web pages with a single GET and extracts their text.
//
// Features:
//   - SSRF prevention via URL validation (initial URL and every redirect)
//   - Size limiting to prevent memory exhaustion
//   - Timeout protection against slow servers
//
// Thread safety: PageFetcher is safe for concurrent use.
type PageFetcher struct {
	client    *http.Client
	config    Config
	extractor Extractor
}

// NewPageFetcher creates a PageFetcher with the given configuration.
// The extractor is chosen from config.Extractor.
func NewPageFetcher(config Config) *PageFetcher {
	config = config.withDefaults()
	f := &PageFetcher{
		config:    config,
		extractor: NewExtractor(config.Extractor),
	}

	f.client = &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12, // Enforce TLS 1.2+
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			// Validate each redirect target for SSRF
			if err := validateURL(req.Context(), req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	return f
}

// FetchAndExtract fetches urlStr and returns its text, bounded to
// text.DefaultMaxLength characters.
//
// Errors:
//   - entity.ErrInvalidInput: malformed URL, non-http(s) scheme, private address
//   - entity.ErrFetch: transport failure, timeout, oversize body, non-2xx status
func (f *PageFetcher) FetchAndExtract(ctx context.Context, urlStr string) (string, error) {
	start := time.Now()

	html, finalURL, err := f.get(ctx, urlStr)
	if err != nil {
		metrics.RecordContentFetchFailed(time.Since(start))
		return "", err
	}

	extracted := f.extractor.Extract(html, finalURL)
	metrics.RecordContentFetchSuccess(time.Since(start), len([]rune(extracted)))

	slog.Debug("page extracted",
		slog.String("url", urlStr),
		slog.Int("html_bytes", len(html)),
		slog.Int("text_length", len([]rune(extracted))))

	return extracted, nil
}

// FetchHTML fetches urlStr and returns the raw response body.
// It applies the same validation and limits as FetchAndExtract.
func (f *PageFetcher) FetchHTML(ctx context.Context, urlStr string) (string, error) {
	html, _, err := f.get(ctx, urlStr)
	return html, err
}

func (f *PageFetcher) get(ctx context.Context, urlStr string) (string, *url.URL, error) {
	if err := validateURL(ctx, urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: failed to create request: %v", entity.ErrInvalidInput, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return "", nil, fmt.Errorf("%w: exceeded %v", ErrTimeout, f.config.Timeout)
		}
		return "", nil, fmt.Errorf("%w: %v", entity.ErrFetch, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil, fmt.Errorf("%w: HTTP %d", entity.ErrFetch, resp.StatusCode)
	}

	// Read one byte past the limit to detect oversize bodies.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodySize+1))
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return "", nil, fmt.Errorf("%w: exceeded %v", ErrTimeout, f.config.Timeout)
		}
		return "", nil, fmt.Errorf("%w: failed to read response body: %v", entity.ErrFetch, err)
	}
	if int64(len(body)) > f.config.MaxBodySize {
		return "", nil, fmt.Errorf("%w: exceeds %d bytes", ErrBodyTooLarge, f.config.MaxBodySize)
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	return string(body), finalURL, nil
}
