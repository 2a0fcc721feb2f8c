package fetcher

import (
	"time"

	"tldr/internal/config"
)

// Extraction strategies, as named by FETCH_EXTRACTOR.
const (
	ExtractorStrip       = config.ExtractorStrip
	ExtractorReadability = config.ExtractorReadability
)

// Config holds the settings of outbound page fetches. Zero fields take the
// DefaultConfig value when passed to NewPageFetcher.
type Config struct {
	Timeout time.Duration

	// MaxBodySize caps the bytes read from a response, whatever its
	// Content-Length says.
	MaxBodySize int64

	// MaxRedirects bounds the redirect chain. Every hop is re-validated.
	MaxRedirects int

	// DenyPrivateIPs refuses loopback, private and link-local targets.
	// Only tests against httptest servers turn it off.
	DenyPrivateIPs bool

	UserAgent string
	Extractor string
}

// DefaultConfig returns the fetch settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    10 << 20,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "Mozilla/5.0 (compatible; TLDR-Bot/1.0)",
		Extractor:      ExtractorStrip,
	}
}

// ConfigFrom maps the validated service configuration onto fetcher settings.
func ConfigFrom(c config.FetchConfig) Config {
	return Config{
		Timeout:        c.Timeout,
		MaxBodySize:    c.MaxBodySize,
		MaxRedirects:   c.MaxRedirects,
		DenyPrivateIPs: c.DenyPrivateIPs,
		UserAgent:      c.UserAgent,
		Extractor:      c.Extractor,
	}
}

// withDefaults fills unset fields. DenyPrivateIPs is left as given.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = def.MaxBodySize
	}
	if c.MaxRedirects < 0 {
		c.MaxRedirects = def.MaxRedirects
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.Extractor == "" {
		c.Extractor = def.Extractor
	}
	return c
}
