package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tldr/internal/domain/entity"
	"tldr/internal/handler/http/respond"
)

// Service is the orchestrator the handler delegates to.
type Service interface {
	Handle(ctx context.Context, req entity.SummarizationRequest) (*entity.SummaryResult, error)
}

// Handler serves POST /api/summarize.
type Handler struct{ Svc Service }

// ServeHTTP godoc
// @Summary      Summarize text, a web page or a social post
// @Description  Produces a short summary of the submitted content along with length statistics.
// @Description  mode "text" summarizes content verbatim, "url" fetches and extracts the page,
// @Description  "post" resolves a Warpcast/Farcaster post link to its text.
// @Tags         summarize
// @Accept       json
// @Produce      json
// @Param        request body Request true "Content to summarize"
// @Success      200 {object} Response
// @Failure      400 {object} ErrorResponse "Invalid input, invalid post URL or nothing to summarize"
// @Failure      413 {object} ErrorResponse "Request body too large"
// @Failure      429 {object} ErrorResponse "Too many requests"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Failure      500 {object} ErrorResponse "Fetch failure or summarization backend failure"
// @Failure      504 {object} ErrorResponse "Request timed out"
// @Router       /api/summarize [post]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respond.Err(w, r, respond.Fail(http.StatusRequestEntityTooLarge, "Request body too large", nil))
			return
		}
		respond.Err(w, r, respond.Fail(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	in := req.toEntity()
	res, err := h.Svc.Handle(r.Context(), in)
	if err != nil {
		respond.Err(w, r, toFailure(r.Context(), in.Mode, err))
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(res))
}

// toFailure maps a pipeline failure to its status code and user message.
// Only the request's own deadline yields 504; a backend call that timed out
// on its own budget is a backend failure.
func toFailure(ctx context.Context, mode entity.Mode, err error) *respond.Failure {
	var validationErr *entity.ValidationError
	switch {
	case ctx.Err() != nil:
		return respond.Fail(http.StatusGatewayTimeout, "Request timed out", err)
	case errors.As(err, &validationErr):
		return respond.Fail(http.StatusBadRequest, capitalize(validationErr.Message), err)
	case errors.Is(err, entity.ErrInvalidPostURL):
		return respond.Fail(http.StatusBadRequest, "Invalid Farcaster post URL", err)
	case errors.Is(err, entity.ErrInvalidInput):
		msg := "Invalid input"
		if entity.Mode(strings.ToLower(strings.TrimSpace(string(mode)))) == entity.ModeURL {
			msg = "Invalid URL"
		}
		return respond.Fail(http.StatusBadRequest, msg, err)
	case errors.Is(err, entity.ErrEmptyContent):
		return respond.Fail(http.StatusBadRequest, "No content found to summarize", err)
	case errors.Is(err, entity.ErrFetch):
		return respond.Fail(http.StatusInternalServerError, "Failed to fetch content", err)
	case errors.Is(err, entity.ErrBackendUnconfigured):
		return respond.Fail(http.StatusInternalServerError, "Summarization backend not configured", err)
	case errors.Is(err, entity.ErrEmptyResult):
		return respond.Fail(http.StatusInternalServerError, "No summary generated", err)
	}
	return respond.Fail(http.StatusInternalServerError, "Failed to generate summary", err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
