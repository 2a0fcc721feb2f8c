package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs swaps the default logger for one writing to a buffer.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body.Error
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		data     any
		wantBody string
	}{
		{name: "struct", code: http.StatusOK, data: struct {
			Summary string `json:"summary"`
		}{Summary: "A fox."}, wantBody: `{"summary":"A fox."}`},
		{name: "nil body", code: http.StatusNoContent, data: nil, wantBody: ""},
		{name: "error body", code: http.StatusBadRequest, data: ErrorBody{Error: "Content is required"}, wantBody: `{"error":"Content is required"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, strings.TrimSpace(w.Body.String()))
		})
	}
}

func TestJSON_EncodingError(t *testing.T) {
	logs := captureLogs(t)
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, make(chan int))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), "failed to encode JSON response")
}

func TestMessage(t *testing.T) {
	w := httptest.NewRecorder()
	Message(w, http.StatusTooManyRequests, "Too many requests, please try again later")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests, please try again later", decodeError(t, w))
}

func TestFailure(t *testing.T) {
	inner := errors.New("huggingface: HTTP 503")
	f := Fail(http.StatusInternalServerError, "Failed to generate summary", inner)

	assert.Equal(t, "Failed to generate summary: huggingface: HTTP 503", f.Error())
	assert.ErrorIs(t, f, inner)
	assert.Equal(t, "Request timed out", Fail(http.StatusGatewayTimeout, "Request timed out", nil).Error())
}

func TestErr(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantMsg   string
		wantLevel string
	}{
		{
			name:      "client failure",
			err:       Fail(http.StatusBadRequest, "Invalid Farcaster post URL", errors.New("no hash segment")),
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Invalid Farcaster post URL",
			wantLevel: "level=WARN",
		},
		{
			name:      "failure without cause",
			err:       Fail(http.StatusGatewayTimeout, "Request timed out", nil),
			wantCode:  http.StatusGatewayTimeout,
			wantMsg:   "Request timed out",
			wantLevel: "level=ERROR",
		},
		{
			name: "wrapped failure",
			err: fmt.Errorf("handle: %w",
				Fail(http.StatusInternalServerError, "Failed to fetch content", errors.New("HTTP 404"))),
			wantCode:  http.StatusInternalServerError,
			wantMsg:   "Failed to fetch content",
			wantLevel: "level=ERROR",
		},
		{
			name:      "unmapped error is hidden",
			err:       errors.New("dial tcp 10.0.0.1:443: connection refused"),
			wantCode:  http.StatusInternalServerError,
			wantMsg:   InternalMessage,
			wantLevel: "level=ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			w := httptest.NewRecorder()
			Err(w, httptest.NewRequest(http.MethodPost, "/api/summarize", nil), tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, w))
			assert.Contains(t, logs.String(), tt.wantLevel)
			assert.Contains(t, logs.String(), "path=/api/summarize")
		})
	}
}

func TestErr_NilWritesNothing(t *testing.T) {
	w := httptest.NewRecorder()
	Err(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Zero(t, w.Body.Len())
}

func TestErr_LogsSanitizedCause(t *testing.T) {
	logs := captureLogs(t)
	w := httptest.NewRecorder()
	Err(w, httptest.NewRequest(http.MethodPost, "/api/summarize", nil), Fail(
		http.StatusInternalServerError,
		"Failed to generate summary",
		errors.New("huggingface: token hf_abcdefghijklmnop rejected"),
	))

	assert.Equal(t, "Failed to generate summary", decodeError(t, w))
	assert.NotContains(t, logs.String(), "hf_abcdefghijklmnop")
	assert.NotContains(t, w.Body.String(), "hf_")
	assert.Contains(t, logs.String(), "hf_****")
}
