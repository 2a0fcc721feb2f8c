package summarizer

import (
	"context"
	"strings"

	"tldr/internal/domain/entity"
)

// NoOp is a summarizer that needs no external service. It returns the
// leading sentences of the input that fit in the budget, counted in words.
// This is useful for local development and tests.
type NoOp struct{}

// NewNoOp creates a new NoOp summarizer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Name implements summarize.Backend.
func (n *NoOp) Name() string { return "noop" }

// Summarize implements summarize.Backend.
func (n *NoOp) Summarize(_ context.Context, req entity.BackendRequest) (string, error) {
	words := strings.Fields(req.Text)
	if req.Budget > 0 && len(words) > req.Budget {
		words = words[:req.Budget]
	}
	out := strings.Join(words, " ")

	// Cut back to the last complete sentence when there is one.
	if i := strings.LastIndexAny(out, ".!?"); i > 0 {
		out = out[:i+1]
	}
	return out, nil
}
