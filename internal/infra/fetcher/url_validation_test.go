package fetcher

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tldr/internal/config"
	"tldr/internal/domain/entity"
)

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip      string
		private bool
	}{
		{"127.0.0.1", true},
		{"127.1.2.3", true},
		{"10.0.0.1", true},
		{"172.16.5.4", true},
		{"172.31.255.255", true},
		{"192.168.1.1", true},
		{"169.254.169.254", true},
		{"0.0.0.0", true},
		{"::1", true},
		{"fc00::1", true},
		{"fe80::1", true},
		{"::", true},
		{"8.8.8.8", false},
		{"172.32.0.1", false},
		{"93.184.216.34", false},
		{"2606:4700:4700::1111", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			assert.Equal(t, tt.private, isPrivateIP(net.ParseIP(tt.ip)))
		})
	}
}

func TestValidateURL_LiteralIPs(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{name: "loopback", url: "http://127.0.0.1:8080/", wantErr: ErrPrivateIP},
		{name: "metadata endpoint", url: "http://169.254.169.254/latest/meta-data", wantErr: ErrPrivateIP},
		{name: "private v6", url: "http://[fc00::1]/", wantErr: ErrPrivateIP},
		{name: "bad scheme", url: "gopher://example.com", wantErr: entity.ErrInvalidInput},
		{name: "public literal", url: "http://93.184.216.34/", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateURL(context.Background(), tt.url, true)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

func TestValidateURL_PrivateAllowedWhenDisabled(t *testing.T) {
	assert.NoError(t, validateURL(context.Background(), "http://127.0.0.1/", false))
}

func TestConfig_WithDefaults(t *testing.T) {
	got := Config{MaxBodySize: 2048, MaxRedirects: -1}.withDefaults()

	assert.Equal(t, 10*time.Second, got.Timeout)
	assert.Equal(t, int64(2048), got.MaxBodySize)
	assert.Equal(t, 5, got.MaxRedirects)
	assert.False(t, got.DenyPrivateIPs)
	assert.NotEmpty(t, got.UserAgent)
	assert.Equal(t, ExtractorStrip, got.Extractor)

	assert.Zero(t, Config{MaxRedirects: 0}.withDefaults().MaxRedirects)
}

func TestConfigFrom(t *testing.T) {
	got := ConfigFrom(config.FetchConfig{
		Timeout:        3 * time.Second,
		MaxBodySize:    1 << 20,
		MaxRedirects:   2,
		DenyPrivateIPs: true,
		UserAgent:      "tldr-test",
		Extractor:      config.ExtractorReadability,
	})

	assert.Equal(t, Config{
		Timeout:        3 * time.Second,
		MaxBodySize:    1 << 20,
		MaxRedirects:   2,
		DenyPrivateIPs: true,
		UserAgent:      "tldr-test",
		Extractor:      ExtractorReadability,
	}, got)
}
