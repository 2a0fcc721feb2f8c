// Package entity defines the request-scoped value objects of the summarization
// pipeline along with their validation rules and domain-specific errors.
// Nothing here is persisted; every value lives for one request.
package entity

import (
	"fmt"
	"strings"
)

// Mode tells the orchestrator how to interpret SummarizationRequest.Content.
type Mode string

const (
	ModeText Mode = "text"
	ModeURL  Mode = "url"
	ModePost Mode = "post"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeText, ModeURL, ModePost:
		return true
	}
	return false
}

// LengthPreference selects the target summary length.
type LengthPreference string

const (
	LengthShort  LengthPreference = "short"
	LengthMedium LengthPreference = "medium"
	LengthLong   LengthPreference = "long"
)

// DefaultLength is used when a request does not name a length.
const DefaultLength = LengthMedium

// MaxExtractedLength bounds text produced from web pages and posts.
const MaxExtractedLength = 8000

// DirectInputSource labels results produced from text mode.
const DirectInputSource = "Direct text input"

// LengthProfile is the generation budget and prompt instruction for a preference.
// Budget is passed to backends as their generation-length cap
// (max tokens for chat models, max_length for seq2seq models).
type LengthProfile struct {
	Budget      int
	Instruction string
}

var lengthProfiles = map[LengthPreference]LengthProfile{
	LengthShort:  {Budget: 100, Instruction: "1-2 sentences"},
	LengthMedium: {Budget: 200, Instruction: "2-3 sentences"},
	LengthLong:   {Budget: 300, Instruction: "3-4 sentences"},
}

// Valid reports whether p is one of the known preferences.
func (p LengthPreference) Valid() bool {
	_, ok := lengthProfiles[p]
	return ok
}

// Profile returns the static budget/instruction pair for p.
// Unknown preferences resolve to the DefaultLength profile.
func (p LengthPreference) Profile() LengthProfile {
	if profile, ok := lengthProfiles[p]; ok {
		return profile
	}
	return lengthProfiles[DefaultLength]
}

// SummarizationRequest is the single inbound operation of the service.
type SummarizationRequest struct {
	Content string
	Mode    Mode
	Length  LengthPreference
}

// Normalize fills the default length and trims surrounding whitespace from
// the mode and length tags. Content is left untouched because text mode
// summarizes it verbatim.
func (r SummarizationRequest) Normalize() SummarizationRequest {
	r.Mode = Mode(strings.ToLower(strings.TrimSpace(string(r.Mode))))
	r.Length = LengthPreference(strings.ToLower(strings.TrimSpace(string(r.Length))))
	if r.Length == "" {
		r.Length = DefaultLength
	}
	return r
}

// Validate checks the request invariants.
// Returns a ValidationError (which is an ErrInvalidInput) on failure.
func (r SummarizationRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	if !r.Mode.Valid() {
		return &ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("mode must be one of text, url, post (got %q)", r.Mode),
		}
	}
	if !r.Length.Valid() {
		return &ValidationError{
			Field:   "length",
			Message: fmt.Sprintf("length must be one of short, medium, long (got %q)", r.Length),
		}
	}
	return nil
}

// BackendRequest is what a summarization backend receives.
type BackendRequest struct {
	Text        string
	Instruction string
	Budget      int
	Preference  LengthPreference
}

// Prompt renders the instruction shared by the chat-style backends.
func (b BackendRequest) Prompt() string {
	return fmt.Sprintf(
		"Summarize the following text in %s (%d words max). Focus on the key points and main ideas. Reply with the summary only.",
		b.Instruction, b.Budget)
}

// Stats holds the length metrics of a summary.
type Stats struct {
	OriginalLength   int
	SummaryLength    int
	ReductionPercent int
}

// SummaryResult is the outcome of a successful request.
type SummaryResult struct {
	Summary string
	Stats
	Source string
}
