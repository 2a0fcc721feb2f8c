// Package http provides the HTTP surface of the service: the summarize
// endpoint, health and liveness probes, metrics exposition and the
// middleware chain wrapped around them.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"tldr/internal/handler/http/respond"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status" example:"healthy"` // "healthy" or "degraded"
	Timestamp string                 `json:"timestamp" example:"2026-01-01T00:00:00Z"`
	Version   string                 `json:"version" example:"1.0.0"`
	Checks    map[string]CheckStatus `json:"checks"`
}

// CheckStatus is the status of one dependency.
type CheckStatus struct {
	Status     string `json:"status"` // "healthy", "degraded" or "unconfigured"
	Configured bool   `json:"configured"`
	Provider   string `json:"provider,omitempty"`
	// CircuitOpen is reported for the summarizer when a breaker is installed.
	CircuitOpen *bool `json:"circuit_open,omitempty"`
}

// Configurable is satisfied by components that may run without credentials.
type Configurable interface {
	Configured() bool
}

// ConfigurableFunc adapts a func to Configurable.
type ConfigurableFunc func() bool

// Configured implements Configurable.
func (f ConfigurableFunc) Configured() bool { return f() }

// BreakerState exposes a circuit breaker without its internals.
type BreakerState interface {
	CircuitOpen() bool
}

// HealthHandler reports which external integrations are usable.
// Only booleans are reported; credential values never leave the process.
type HealthHandler struct {
	Version  string
	Provider string

	Summarizer Configurable
	// Breaker is optional.
	Breaker BreakerState
	// PostAPI is optional; nil reports the post API as unconfigured.
	PostAPI Configurable
}

// ServeHTTP godoc
// @Summary      Health check
// @Description  Reports service status and whether the summarization backend and the post API are configured
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := map[string]CheckStatus{
		"summarizer": h.checkSummarizer(),
		"post_api":   checkConfigurable(h.PostAPI),
	}

	// A missing summarizer makes every request fail; a missing post API only
	// removes the first resolution stage.
	status := "healthy"
	if checks["summarizer"].Status != "healthy" {
		status = "degraded"
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.Version,
		Checks:    checks,
	})
}

func (h *HealthHandler) checkSummarizer() CheckStatus {
	check := checkConfigurable(h.Summarizer)
	check.Provider = h.Provider
	if h.Breaker != nil && check.Configured {
		open := h.Breaker.CircuitOpen()
		check.CircuitOpen = &open
		if open {
			check.Status = "degraded"
		}
	}
	return check
}

func checkConfigurable(c Configurable) CheckStatus {
	if c == nil || !c.Configured() {
		return CheckStatus{Status: "unconfigured"}
	}
	return CheckStatus{Status: "healthy", Configured: true}
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

// ServeHTTP godoc
// @Summary      Liveness probe
// @Description  Returns 200 while the process is running
// @Tags         health
// @Produce      plain
// @Success      200 {string} string "alive"
// @Router       /live [get]
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Error("alive: failed to write response", slog.Any("error", err))
	}
}
