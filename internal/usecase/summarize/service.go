package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tldr/internal/domain/entity"
	"tldr/internal/observability/metrics"
	"tldr/internal/observability/tracing"
	"tldr/internal/utils/text"
)

// Service is the request orchestrator. It validates a request, routes the
// content to the matching extractor, summarizes the result and computes its
// statistics.
type Service struct {
	Fetcher    PageFetcher
	Resolver   PostResolver
	Dispatcher *Dispatcher
}

// NewService creates a summarize Service.
func NewService(fetcher PageFetcher, resolver PostResolver, dispatcher *Dispatcher) *Service {
	return &Service{
		Fetcher:    fetcher,
		Resolver:   resolver,
		Dispatcher: dispatcher,
	}
}

// Handle runs one summarization request end to end.
// Failures are categorized with the entity sentinel errors; nothing partial
// is ever returned alongside an error.
func (s *Service) Handle(ctx context.Context, req entity.SummarizationRequest) (*entity.SummaryResult, error) {
	req = req.Normalize()

	ctx, span := tracing.GetTracer().Start(ctx, "summarize.Handle",
		trace.WithAttributes(
			attribute.String("summarize.mode", string(req.Mode)),
			attribute.String("summarize.length", string(req.Length)),
		))
	defer span.End()

	result, err := s.handle(ctx, req)
	metrics.RecordSummary(string(req.Mode), Outcome(err))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, Outcome(err))
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("summarize.original_length", result.OriginalLength),
		attribute.Int("summarize.summary_length", result.SummaryLength),
	)
	return result, nil
}

func (s *Service) handle(ctx context.Context, req entity.SummarizationRequest) (*entity.SummaryResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	content, source, err := s.extract(ctx, req)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, entity.ErrEmptyContent
	}

	summary, err := s.summarize(ctx, content, req.Length)
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(content, summary)

	slog.InfoContext(ctx, "summary generated",
		slog.String("mode", string(req.Mode)),
		slog.String("length", string(req.Length)),
		slog.Int("original_length", stats.OriginalLength),
		slog.Int("summary_length", stats.SummaryLength),
		slog.Int("reduction_percent", stats.ReductionPercent))

	return &entity.SummaryResult{
		Summary: summary,
		Stats:   stats,
		Source:  source,
	}, nil
}

// extract returns the text to summarize and its source label.
func (s *Service) extract(ctx context.Context, req entity.SummarizationRequest) (string, string, error) {
	if req.Mode == entity.ModeText {
		return req.Content, entity.DirectInputSource, nil
	}

	target := strings.TrimSpace(req.Content)

	ctx, span := tracing.GetTracer().Start(ctx, "summarize.extract",
		trace.WithAttributes(attribute.String("summarize.mode", string(req.Mode))))
	defer span.End()

	var content string
	var err error
	switch req.Mode {
	case entity.ModeURL:
		content, err = s.Fetcher.FetchAndExtract(ctx, target)
	case entity.ModePost:
		// Rejected here so a malformed link never reaches the network.
		if _, perr := entity.ParsePostURL(target); perr != nil {
			err = perr
			break
		}
		content, err = s.Resolver.ResolvePost(ctx, target)
	default:
		err = fmt.Errorf("%w: unsupported mode %q", entity.ErrInvalidInput, req.Mode)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		return "", "", err
	}

	span.SetAttributes(attribute.Int("summarize.extracted_length", text.CountRunes(content)))
	return content, target, nil
}

func (s *Service) summarize(ctx context.Context, content string, pref entity.LengthPreference) (string, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "summarize.dispatch")
	defer span.End()

	summary, err := s.Dispatcher.Summarize(ctx, content, pref)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "summarization failed")
		return "", err
	}
	return summary, nil
}

// Outcome names the category of err for metrics and traces.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, entity.ErrInvalidPostURL):
		return "invalid_post_url"
	case errors.Is(err, entity.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, entity.ErrEmptyContent):
		return "empty_content"
	case errors.Is(err, entity.ErrFetch):
		return "fetch_error"
	case errors.Is(err, entity.ErrBackendUnconfigured):
		return "backend_unconfigured"
	case errors.Is(err, entity.ErrBackend):
		return "backend_error"
	case errors.Is(err, entity.ErrEmptyResult):
		return "empty_result"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	}
	return "internal_error"
}
