package summarizer

import (
	"context"

	goopenai "github.com/sashabaranov/go-openai"

	"tldr/internal/domain/entity"
)

// OpenAIChat summarizes through an OpenAI-compatible chat completions API.
// It serves both the openai and perplexity providers; only the base URL,
// model and credential differ.
type OpenAIChat struct {
	name   string
	model  string
	client *goopenai.Client
}

// NewOpenAIChat creates a chat completions backend named after cfg.Provider.
// cfg.BaseURL and cfg.Model win over the given defaults; an empty base URL
// keeps the library default (api.openai.com).
func NewOpenAIChat(cfg Config, defaultBaseURL, defaultModel string) *OpenAIChat {
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if baseURL := cfg.baseURLOr(defaultBaseURL); baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	clientCfg.HTTPClient = cfg.httpClient()

	return &OpenAIChat{
		name:   cfg.Provider,
		model:  cfg.modelOr(defaultModel),
		client: goopenai.NewClientWithConfig(clientCfg),
	}
}

// Name implements summarize.Backend.
func (o *OpenAIChat) Name() string { return o.name }

// Summarize sends the instruction as the system message and the source text
// as the user message, capped at req.Budget tokens.
func (o *OpenAIChat) Summarize(ctx context.Context, req entity.BackendRequest) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: o.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: req.Prompt()},
			{Role: goopenai.ChatMessageRoleUser, Content: req.Text},
		},
		MaxTokens: req.Budget,
	})
	if err != nil {
		return "", sdkError(o.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}
