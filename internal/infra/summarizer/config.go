package summarizer

import (
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	goopenai "github.com/sashabaranov/go-openai"

	"tldr/internal/config"
)

// Default endpoints and models per provider. Model and BaseURL can be
// overridden through SUMMARIZER_MODEL and SUMMARIZER_BASE_URL.
const (
	DefaultHuggingFaceBaseURL = "https://api-inference.huggingface.co/models"
	DefaultHuggingFaceModel   = "facebook/bart-large-cnn"

	DefaultPerplexityBaseURL = "https://api.perplexity.ai"
	DefaultPerplexityModel   = "sonar"

	DefaultOpenAIModel = goopenai.GPT4oMini
	DefaultClaudeModel = string(anthropic.ModelClaudeHaiku4_5)
)

// Config configures one summarization backend.
type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string

	// Timeout bounds each backend call, retries included.
	Timeout time.Duration
	// MaxAttempts of 1 disables retrying.
	MaxAttempts    int
	CircuitBreaker bool

	// HTTPClient is used by the HTTP-based providers. Nil means a client with
	// no timeout of its own; Timeout still applies through the context.
	HTTPClient *http.Client
}

// ConfigFrom selects the provider settings and its credential from the
// service configuration.
func ConfigFrom(c config.SummarizerConfig) Config {
	return Config{
		Provider:       c.Provider,
		Model:          c.Model,
		BaseURL:        c.BaseURL,
		APIKey:         c.SummarizerAPIKey(),
		Timeout:        c.Timeout,
		MaxAttempts:    c.MaxAttempts,
		CircuitBreaker: c.CircuitBreaker,
	}
}

func (c Config) modelOr(def string) string {
	if c.Model != "" {
		return c.Model
	}
	return def
}

func (c Config) baseURLOr(def string) string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return def
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{}
}
