// Package config builds the service configuration once at startup.
//
// Values are layered: code defaults, then an optional YAML file named by
// CONFIG_FILE, then environment variables. The result is validated before use.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Provider names accepted by SUMMARIZER_PROVIDER.
const (
	ProviderHuggingFace     = "huggingface"
	ProviderOpenAI          = "openai"
	ProviderPerplexity      = "perplexity"
	ProviderOpenAIResponses = "openai-responses"
	ProviderClaude          = "claude"
	ProviderNoop            = "noop"
)

// Extractor names accepted by FETCH_EXTRACTOR.
const (
	ExtractorStrip       = "strip"
	ExtractorReadability = "readability"
)

// Config is the full service configuration.
type Config struct {
	Version    string           `yaml:"version" env:"VERSION"`
	Server     ServerConfig     `yaml:"server"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Farcaster  FarcasterConfig  `yaml:"farcaster"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr              string        `yaml:"addr" env:"SERVER_ADDR"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"SERVER_READ_HEADER_TIMEOUT"`
	ReadTimeout       time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout      time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	// RequestTimeout bounds a whole /api/summarize request.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" env:"SERVER_MAX_BODY_BYTES"`

	// RateLimit is the sustained per-IP rate (requests per second) on the
	// summarize endpoint. Zero disables limiting.
	RateLimit float64 `yaml:"rate_limit" env:"RATE_LIMIT_RPS"`
	RateBurst int     `yaml:"rate_burst" env:"RATE_LIMIT_BURST"`

	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For and
	// X-Real-IP headers are believed. Empty means RemoteAddr only.
	TrustedProxies []string `yaml:"trusted_proxies" env:"RATE_LIMIT_TRUSTED_PROXIES" envSeparator:","`

	// CORSAllowedOrigins enables cross-origin access for a separately hosted
	// front end. Empty disables CORS handling.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// FetchConfig holds outbound page fetch settings.
type FetchConfig struct {
	Timeout        time.Duration `yaml:"timeout" env:"FETCH_TIMEOUT"`
	MaxBodySize    int64         `yaml:"max_body_size" env:"FETCH_MAX_BODY_SIZE"`
	MaxRedirects   int           `yaml:"max_redirects" env:"FETCH_MAX_REDIRECTS"`
	DenyPrivateIPs bool          `yaml:"deny_private_ips" env:"FETCH_DENY_PRIVATE_IPS"`
	UserAgent      string        `yaml:"user_agent" env:"FETCH_USER_AGENT"`
	Extractor      string        `yaml:"extractor" env:"FETCH_EXTRACTOR"`
}

// FarcasterConfig holds the post API settings.
type FarcasterConfig struct {
	APIKey  string        `yaml:"-" env:"NEYNAR_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"NEYNAR_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"NEYNAR_TIMEOUT"`
}

// SummarizerConfig selects and tunes the summarization backend.
// Credentials are read from the environment only.
type SummarizerConfig struct {
	Provider string `yaml:"provider" env:"SUMMARIZER_PROVIDER"`
	// Model overrides the provider default model.
	Model string `yaml:"model" env:"SUMMARIZER_MODEL"`
	// BaseURL overrides the provider endpoint (used by tests and proxies).
	BaseURL string        `yaml:"base_url" env:"SUMMARIZER_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"SUMMARIZER_TIMEOUT"`

	MaxAttempts    int  `yaml:"max_attempts" env:"SUMMARIZER_MAX_ATTEMPTS"`
	CircuitBreaker bool `yaml:"circuit_breaker" env:"SUMMARIZER_CIRCUIT_BREAKER"`

	HuggingFaceAPIKey string `yaml:"-" env:"HUGGINGFACE_API_KEY"`
	OpenAIAPIKey      string `yaml:"-" env:"OPENAI_API_KEY"`
	PerplexityAPIKey  string `yaml:"-" env:"PERPLEXITY_API_KEY"`
	AnthropicAPIKey   string `yaml:"-" env:"ANTHROPIC_API_KEY"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Version: "dev",
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      120 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RequestTimeout:    90 * time.Second,
			MaxBodyBytes:      1 << 20,
			RateLimit:         1,
			RateBurst:         10,
		},
		Fetch: FetchConfig{
			Timeout:        10 * time.Second,
			MaxBodySize:    10 * 1024 * 1024,
			MaxRedirects:   5,
			DenyPrivateIPs: true,
			UserAgent:      "Mozilla/5.0 (compatible; TLDR-Bot/1.0)",
			Extractor:      ExtractorStrip,
		},
		Farcaster: FarcasterConfig{
			BaseURL: "https://api.neynar.com",
			Timeout: 10 * time.Second,
		},
		Summarizer: SummarizerConfig{
			Provider:       ProviderHuggingFace,
			Timeout:        60 * time.Second,
			MaxAttempts:    1,
			CircuitBreaker: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE and the environment, then validates it.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv("CONFIG_FILE"), nil)
}

// LoadFrom is Load with an explicit file path and environment.
// An empty path skips the file. A nil environment means the process environment.
func LoadFrom(path string, environ map[string]string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.Summarizer.Provider = strings.ToLower(strings.TrimSpace(cfg.Summarizer.Provider))
	cfg.Fetch.Extractor = strings.ToLower(strings.TrimSpace(cfg.Fetch.Extractor))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	// #nosec G304 -- path comes from the operator (CONFIG_FILE), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Validate checks configuration correctness.
// Missing credentials are not errors: the affected feature reports itself
// unconfigured at request time.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("SERVER_ADDR cannot be empty"))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("SERVER_REQUEST_TIMEOUT must be positive"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SERVER_SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("SERVER_MAX_BODY_BYTES must be positive"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS cannot be negative"))
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive when rate limiting is enabled"))
	}

	if c.Fetch.Timeout <= 0 {
		errs = append(errs, errors.New("FETCH_TIMEOUT must be positive"))
	}
	if c.Fetch.MaxBodySize <= 0 {
		errs = append(errs, errors.New("FETCH_MAX_BODY_SIZE must be positive"))
	}
	if c.Fetch.MaxRedirects < 0 {
		errs = append(errs, errors.New("FETCH_MAX_REDIRECTS cannot be negative"))
	}
	if c.Fetch.UserAgent == "" {
		errs = append(errs, errors.New("FETCH_USER_AGENT cannot be empty"))
	}
	switch c.Fetch.Extractor {
	case ExtractorStrip, ExtractorReadability:
	default:
		errs = append(errs, fmt.Errorf("FETCH_EXTRACTOR must be %q or %q, got %q",
			ExtractorStrip, ExtractorReadability, c.Fetch.Extractor))
	}

	if c.Farcaster.BaseURL == "" {
		errs = append(errs, errors.New("NEYNAR_BASE_URL cannot be empty"))
	}
	if c.Farcaster.Timeout <= 0 {
		errs = append(errs, errors.New("NEYNAR_TIMEOUT must be positive"))
	}

	switch c.Summarizer.Provider {
	case ProviderHuggingFace, ProviderOpenAI, ProviderPerplexity,
		ProviderOpenAIResponses, ProviderClaude, ProviderNoop:
	default:
		errs = append(errs, fmt.Errorf("SUMMARIZER_PROVIDER %q is not supported", c.Summarizer.Provider))
	}
	if c.Summarizer.Timeout <= 0 {
		errs = append(errs, errors.New("SUMMARIZER_TIMEOUT must be positive"))
	}
	if c.Summarizer.MaxAttempts < 1 {
		errs = append(errs, errors.New("SUMMARIZER_MAX_ATTEMPTS must be at least 1"))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// SummarizerAPIKey returns the credential of the selected provider.
// The noop provider needs none and reports a placeholder.
func (s SummarizerConfig) SummarizerAPIKey() string {
	switch s.Provider {
	case ProviderHuggingFace:
		return s.HuggingFaceAPIKey
	case ProviderOpenAI, ProviderOpenAIResponses:
		return s.OpenAIAPIKey
	case ProviderPerplexity:
		return s.PerplexityAPIKey
	case ProviderClaude:
		return s.AnthropicAPIKey
	case ProviderNoop:
		return "noop"
	}
	return ""
}

// Configured reports whether the selected provider has its credential.
func (s SummarizerConfig) Configured() bool {
	return s.SummarizerAPIKey() != ""
}
