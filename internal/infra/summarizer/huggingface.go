package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"tldr/internal/domain/entity"
)

// maxInferenceResponse bounds the inference API response body.
const maxInferenceResponse = 1 << 20

// HuggingFace summarizes with a seq2seq model on the Hugging Face inference API.
type HuggingFace struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	MaxLength     int  `json:"max_length"`
	MinLength     int  `json:"min_length"`
	DoSample      bool `json:"do_sample"`
	NumBeams      int  `json:"num_beams"`
	EarlyStopping bool `json:"early_stopping"`
}

// NewHuggingFace creates a backend posting to <base URL>/<model>.
func NewHuggingFace(cfg Config) *HuggingFace {
	base := strings.TrimRight(cfg.baseURLOr(DefaultHuggingFaceBaseURL), "/")
	return &HuggingFace{
		endpoint: base + "/" + cfg.modelOr(DefaultHuggingFaceModel),
		apiKey:   cfg.APIKey,
		client:   cfg.httpClient(),
	}
}

// Name implements summarize.Backend.
func (h *HuggingFace) Name() string { return "huggingface" }

// Summarize implements summarize.Backend. The budget is the model's
// max_length; min_length is 30% of it.
func (h *HuggingFace) Summarize(ctx context.Context, req entity.BackendRequest) (string, error) {
	payload, err := json.Marshal(inferenceRequest{
		Inputs: req.Text,
		Parameters: inferenceParameters{
			MaxLength:     req.Budget,
			MinLength:     req.Budget * 3 / 10,
			DoSample:      false,
			NumBeams:      4,
			EarlyStopping: true,
		},
	})
	if err != nil {
		return "", fmt.Errorf("huggingface: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("huggingface: create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+h.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("huggingface: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxInferenceResponse))
	if err != nil {
		return "", fmt.Errorf("huggingface: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		// A cold model answers 503 with its expected warm-up time in seconds.
		wait := retryAfterHeader(resp)
		if est := gjson.GetBytes(body, "estimated_time").Float(); est > 0 {
			wait = time.Duration(est * float64(time.Second))
		}
		return "", statusError(h.Name(), resp.StatusCode, msg, wait)
	}

	if !gjson.ValidBytes(body) {
		return "", errors.New("huggingface: response is not valid JSON")
	}
	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return "", fmt.Errorf("huggingface: %s", msg.String())
	}

	// A missing summary_text reads as "", which the dispatcher reports as an
	// empty result.
	return gjson.GetBytes(body, "0.summary_text").String(), nil
}
