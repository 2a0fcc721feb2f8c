package pathutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/api/summarize", "/api/summarize"},
		{"/api/summarize/", "/api/summarize"},
		{"/api/summarize?debug=1", "/api/summarize"},
		{"/health", "/health"},
		{"/live", "/live"},
		{"/metrics", "/metrics"},
		{"/swagger", "/swagger/*"},
		{"/swagger/", "/swagger/*"},
		{"/swagger/index.html", "/swagger/*"},
		{"/swagger/doc.json", "/swagger/*"},
		{"/api/summarize/extra", UnmatchedPath},
		{"/.env", UnmatchedPath},
		{"/swaggerfoo", UnmatchedPath},
		{"", UnmatchedPath},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.path))
		})
	}
}

func TestNormalizePath_Cardinality(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 1000; i++ {
		seen[NormalizePath(fmt.Sprintf("/probe/%d", i))] = struct{}{}
		seen[NormalizePath(fmt.Sprintf("/swagger/asset-%d.js", i))] = struct{}{}
	}
	seen[NormalizePath("/api/summarize")] = struct{}{}

	assert.Len(t, seen, 3)
	assert.LessOrEqual(t, len(seen), GetExpectedCardinality())
}

func BenchmarkNormalizePath(b *testing.B) {
	paths := []string{"/api/summarize", "/health", "/swagger/index.html", "/wp-login.php"}
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_ = NormalizePath(paths[i%len(paths)])
			i++
		}
	})
}
