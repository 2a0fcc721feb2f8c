package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	h := CORS(CORSConfig{AllowedOrigins: []string{"https://tldr.example.com"}})(okHandler())

	t.Run("same origin request untouched", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/summarize", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/summarize", nil)
		req.Header.Set("Origin", "https://tldr.example.com")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://tldr.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", w.Header().Get("Vary"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/summarize", nil)
		req.Header.Set("Origin", "https://tldr.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, X-Request-ID", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("other origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/summarize", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCORS_DisabledWithoutOrigins(t *testing.T) {
	next := okHandler()
	h := CORS(CORSConfig{})(next)

	req := httptest.NewRequest(http.MethodOptions, "/api/summarize", nil)
	req.Header.Set("Origin", "https://tldr.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestValidateOrigins(t *testing.T) {
	assert.NoError(t, ValidateOrigins([]string{"https://tldr.example.com", "http://localhost:3000"}))
	assert.Error(t, ValidateOrigins([]string{"ftp://example.com"}))
	assert.Error(t, ValidateOrigins([]string{"https://example.com/app"}))
	assert.Error(t, ValidateOrigins([]string{"https://"}))
	assert.Error(t, ValidateOrigins([]string{"https://example.com?x=1"}))
}
