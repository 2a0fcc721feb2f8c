package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, "test-id-123", FromContext(WithRequestID(context.Background(), "test-id-123")))
	assert.Empty(t, FromContext(context.Background()))
	assert.Empty(t, FromContext(context.WithValue(context.Background(), RequestIDKey, 12345)))
}

func TestValid(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"existing-request-id-456", true},
		{"6f1c1e0e-8b4e-4d8f-9a53-7e0f1c2d3b4a", true},
		{"trace.abc_DEF-1", true},
		{"", false},
		{strings.Repeat("a", MaxLength), true},
		{strings.Repeat("a", MaxLength+1), false},
		{"id with spaces", false},
		{"id\ninjected=1", false},
		{`{"json":true}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.id))
		})
	}
}

func serve(header string) (captured string, rec *httptest.ResponseRecorder) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/summarize", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return captured, rec
}

func TestMiddleware_ReusesValidID(t *testing.T) {
	captured, rec := serve("existing-request-id-456")

	assert.Equal(t, "existing-request-id-456", captured)
	assert.Equal(t, "existing-request-id-456", rec.Header().Get(RequestIDHeader))
}

func TestMiddleware_GeneratesID(t *testing.T) {
	for _, header := range []string{"", "bad id\r\nX-Evil: 1", strings.Repeat("x", 500)} {
		captured, rec := serve(header)

		_, err := uuid.Parse(captured)
		assert.NoError(t, err, "generated ID should be a valid UUID")
		assert.Equal(t, captured, rec.Header().Get(RequestIDHeader))
	}
}

func TestMiddleware_UniquePerRequest(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id, _ := serve("")
		assert.False(t, seen[id], "duplicate request ID %s", id)
		seen[id] = true
	}
}
