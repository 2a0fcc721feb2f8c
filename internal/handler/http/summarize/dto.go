// Package summarize provides the HTTP handler for the summarize endpoint.
package summarize

import "tldr/internal/domain/entity"

// Request is the JSON body of POST /api/summarize.
type Request struct {
	// Content is the text itself, a page URL or a post URL depending on Mode.
	Content string `json:"content" example:"The quick brown fox."`
	// Mode is one of text, url, post. Defaults to text.
	Mode string `json:"mode,omitempty" example:"text" enums:"text,url,post"`
	// Length is one of short, medium, long. Defaults to medium.
	Length string `json:"length,omitempty" example:"short" enums:"short,medium,long"`
}

// Response is the JSON body of a successful summarization.
type Response struct {
	Summary          string `json:"summary" example:"A fox."`
	OriginalLength   int    `json:"originalLength" example:"20"`
	SummaryLength    int    `json:"summaryLength" example:"6"`
	ReductionPercent int    `json:"reductionPercent" example:"70"`
	Source           string `json:"source" example:"Direct text input"`
}

// ErrorResponse is the JSON body of every failure.
type ErrorResponse struct {
	Error string `json:"error" example:"Content is required"`
}

func (r Request) toEntity() entity.SummarizationRequest {
	mode := entity.Mode(r.Mode)
	if mode == "" {
		mode = entity.ModeText
	}
	return entity.SummarizationRequest{
		Content: r.Content,
		Mode:    mode,
		Length:  entity.LengthPreference(r.Length),
	}
}

func toResponse(res *entity.SummaryResult) Response {
	return Response{
		Summary:          res.Summary,
		OriginalLength:   res.OriginalLength,
		SummaryLength:    res.SummaryLength,
		ReductionPercent: res.ReductionPercent,
		Source:           res.Source,
	}
}
