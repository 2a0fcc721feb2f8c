package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tldr/internal/domain/entity"
)

// Dispatcher turns a length preference into a backend request and
// normalizes the backend's answer.
type Dispatcher struct {
	backend Backend
}

// NewDispatcher creates a Dispatcher. A nil backend is allowed: every call
// then fails with entity.ErrBackendUnconfigured.
func NewDispatcher(backend Backend) *Dispatcher {
	return &Dispatcher{backend: backend}
}

// Configured reports whether a backend is available.
func (d *Dispatcher) Configured() bool {
	return d != nil && d.backend != nil
}

// Summarize asks the backend for a summary of text.
//
// Errors:
//   - entity.ErrBackendUnconfigured: no backend
//   - entity.ErrBackend: the backend call failed
//   - entity.ErrEmptyResult: the backend answered without text, or with blank text
func (d *Dispatcher) Summarize(ctx context.Context, text string, pref entity.LengthPreference) (string, error) {
	if !d.Configured() {
		return "", entity.ErrBackendUnconfigured
	}

	profile := pref.Profile()
	summary, err := d.backend.Summarize(ctx, entity.BackendRequest{
		Text:        text,
		Instruction: profile.Instruction,
		Budget:      profile.Budget,
		Preference:  pref,
	})
	if err != nil {
		if errors.Is(err, entity.ErrBackendUnconfigured) {
			return "", err
		}
		// Backend errors already name their provider.
		return "", fmt.Errorf("%w: %w", entity.ErrBackend, err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", entity.ErrEmptyResult
	}
	return summary, nil
}
