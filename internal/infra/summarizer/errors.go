package summarizer

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go/v3"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/tidwall/gjson"

	"tldr/internal/resilience/retry"
	"tldr/internal/utils/text"
)

// maxErrorMessage bounds provider error bodies carried into our errors.
const maxErrorMessage = 200

// statusError reports a non-success provider response. It is a
// *retry.HTTPError so 5xx, 408 and 429 are retried, after retryAfter when
// the provider gave a hint.
func statusError(provider string, status int, message string, retryAfter time.Duration) error {
	return fmt.Errorf("%s: %w", provider, &retry.HTTPError{
		StatusCode: status,
		Message:    text.TruncateTrimmed(message, maxErrorMessage),
		RetryAfter: retryAfter,
	})
}

func retryAfterHeader(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	return retry.ParseRetryAfter(resp.Header.Get("Retry-After"))
}

// sdkError converts the error types of the provider SDKs into statusError
// so retry classification works the same for every backend.
func sdkError(provider string, err error) error {
	var chatErr *goopenai.APIError
	if errors.As(err, &chatErr) && chatErr.HTTPStatusCode > 0 {
		return statusError(provider, chatErr.HTTPStatusCode, chatErr.Message, 0)
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return statusError(provider, reqErr.HTTPStatusCode, reqErr.HTTPStatus, 0)
	}
	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return statusError(provider, oaErr.StatusCode, oaErr.Message, retryAfterHeader(oaErr.Response))
	}
	var antErr *anthropic.Error
	if errors.As(err, &antErr) {
		return statusError(provider, antErr.StatusCode,
			gjson.Get(antErr.RawJSON(), "error.message").String(), retryAfterHeader(antErr.Response))
	}
	return fmt.Errorf("%s: %w", provider, err)
}
