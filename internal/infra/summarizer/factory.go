// Package summarizer provides the summarization backends: Hugging Face
// inference, OpenAI-compatible chat completions (OpenAI and Perplexity),
// the OpenAI Responses API, Anthropic Claude and a local no-op. Every backend
// built by New is wrapped in Resilient for timeouts, circuit breaking,
// retries, logging and Prometheus metrics.
package summarizer

import (
	"fmt"

	"tldr/internal/config"
	"tldr/internal/domain/entity"
	"tldr/internal/usecase/summarize"
)

// New builds the backend selected by cfg.Provider.
// It returns entity.ErrBackendUnconfigured when the provider's credential is
// missing; callers are expected to keep running without a backend.
func New(cfg Config) (summarize.Backend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: no API key for provider %q", entity.ErrBackendUnconfigured, cfg.Provider)
	}

	var backend summarize.Backend
	switch cfg.Provider {
	case config.ProviderHuggingFace:
		backend = NewHuggingFace(cfg)
	case config.ProviderOpenAI:
		backend = NewOpenAIChat(cfg, "", DefaultOpenAIModel)
	case config.ProviderPerplexity:
		backend = NewOpenAIChat(cfg, DefaultPerplexityBaseURL, DefaultPerplexityModel)
	case config.ProviderOpenAIResponses:
		backend = NewOpenAIResponses(cfg)
	case config.ProviderClaude:
		backend = NewClaude(cfg)
	case config.ProviderNoop:
		backend = NewNoOp()
	default:
		return nil, fmt.Errorf("unsupported summarizer provider %q", cfg.Provider)
	}

	return NewResilient(backend, cfg, nil), nil
}
