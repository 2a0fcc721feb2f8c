package summarizer

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"tldr/internal/domain/entity"
)

// Claude summarizes through Anthropic's Messages API.
type Claude struct {
	model  string
	client anthropic.Client
}

// NewClaude creates a Claude backend. SDK-level retries are disabled;
// Resilient owns the retry policy.
func NewClaude(cfg Config) *Claude {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(cfg.httpClient()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Claude{
		model:  cfg.modelOr(DefaultClaudeModel),
		client: anthropic.NewClient(opts...),
	}
}

// Name implements summarize.Backend.
func (c *Claude) Name() string { return "claude" }

// Summarize implements summarize.Backend. The first text block of the reply
// is the summary.
func (c *Claude) Summarize(ctx context.Context, req entity.BackendRequest) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(req.Budget),
		System: []anthropic.TextBlockParam{
			{Text: req.Prompt()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(req.Text),
			),
		},
	})
	if err != nil {
		return "", sdkError(c.Name(), err)
	}

	for _, block := range message.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			return textBlock.Text, nil
		}
	}
	return "", nil
}
