// Package farcaster resolves Farcaster post links into their text.
//
// The Neynar API is tried first when a key is configured. Any API failure
// falls back to scraping the post page, and a page without recognizable post
// markup falls back to the page's whole visible text.
package farcaster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"tldr/internal/domain/entity"
)

// maxAPIResponseSize caps the Neynar response body we are willing to read.
const maxAPIResponseSize = 2 * 1024 * 1024 // 2MB

// NeynarClient looks up casts by hash.
type NeynarClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewNeynarClient creates a client for the Neynar v2 API.
// A nil httpClient gets one with the given timeout.
func NewNeynarClient(baseURL, apiKey string, timeout time.Duration, httpClient *http.Client) *NeynarClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &NeynarClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpClient,
	}
}

// CastText returns the text of the cast identified by hash ("0x" + 64 hex).
//
// Errors:
//   - entity.ErrFetch: transport failure
//   - entity.ErrBackend: non-2xx status, malformed JSON, missing or empty text
func (c *NeynarClient) CastText(ctx context.Context, hash string) (string, error) {
	q := url.Values{}
	q.Set("identifier", hash)
	q.Set("type", "hash")
	endpoint := c.baseURL + "/v2/farcaster/cast?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: create neynar request: %v", entity.ErrBackend, err)
	}
	req.Header.Set("api_key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: neynar request: %v", entity.ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: read neynar response: %v", entity.ErrFetch, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: neynar HTTP %d", entity.ErrBackend, resp.StatusCode)
	}

	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: neynar returned malformed JSON", entity.ErrBackend)
	}

	castText := strings.TrimSpace(gjson.GetBytes(body, "cast.text").String())
	if castText == "" {
		return "", fmt.Errorf("%w: neynar cast has no text", entity.ErrBackend)
	}

	return castText, nil
}
