package summarizer

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"

	"tldr/internal/domain/entity"
)

// OpenAIResponses summarizes through OpenAI's Responses API.
type OpenAIResponses struct {
	model  string
	client openai.Client
}

// NewOpenAIResponses creates a Responses API backend. SDK-level retries are
// disabled; Resilient owns the retry policy.
func NewOpenAIResponses(cfg Config) *OpenAIResponses {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(cfg.httpClient()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIResponses{
		model:  cfg.modelOr(openai.ChatModelGPT4oMini),
		client: openai.NewClient(opts...),
	}
}

// Name implements summarize.Backend.
func (o *OpenAIResponses) Name() string { return "openai-responses" }

// Summarize implements summarize.Backend.
func (o *OpenAIResponses) Summarize(ctx context.Context, req entity.BackendRequest) (string, error) {
	resp, err := o.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(int64(req.Budget)),
		Instructions:    openai.String(req.Prompt()),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(req.Text),
		},
	})
	if err != nil {
		return "", sdkError(o.Name(), err)
	}

	// An incomplete response still carries the text produced before the cap.
	return resp.OutputText(), nil
}
