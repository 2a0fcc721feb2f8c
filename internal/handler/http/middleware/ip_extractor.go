package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPExtractor derives the client address used as the rate limit key.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the TCP peer address and ignores forwarding headers.
// It is the right choice when the service is reachable directly.
type RemoteAddrExtractor struct{}

// ExtractIP strips the port from r.RemoteAddr.
//
// Examples:
//   - "192.168.1.1:54321" → "192.168.1.1"
//   - "[2001:db8::1]:8080" → "2001:db8::1"
//   - "127.0.0.1" → "127.0.0.1"
func (RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// ParseTrustedProxies converts IPs and CIDR ranges to prefixes.
// A bare IP becomes a /32 (IPv4) or /128 (IPv6) prefix.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: must be an IP address or CIDR range", entry)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// TrustedProxyExtractor reads X-Forwarded-For, then X-Real-IP, but only when
// the peer is one of the trusted proxies. Anything else falls back to
// RemoteAddr so clients cannot rotate their key with spoofed headers.
type TrustedProxyExtractor struct {
	proxies []netip.Prefix
}

// NewTrustedProxyExtractor creates a TrustedProxyExtractor.
func NewTrustedProxyExtractor(proxies []netip.Prefix) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{proxies: proxies}
}

// NewIPExtractor returns a TrustedProxyExtractor when proxies are configured
// and a RemoteAddrExtractor otherwise.
func NewIPExtractor(proxies []netip.Prefix) IPExtractor {
	if len(proxies) == 0 {
		return RemoteAddrExtractor{}
	}
	return NewTrustedProxyExtractor(proxies)
}

func (e *TrustedProxyExtractor) isTrusted(remoteAddr string) bool {
	ip, err := extractIPFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range e.proxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ExtractIP implements IPExtractor.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.isTrusted(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("ignoring X-Forwarded-For from untrusted peer",
				slog.String("remote_addr", r.RemoteAddr))
		}
		return extractIPFromAddr(r.RemoteAddr)
	}

	if ip := parseFirstIP(r.Header.Get("X-Forwarded-For")); ip != "" {
		return ip, nil
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip.String(), nil
	}
	return extractIPFromAddr(r.RemoteAddr)
}

func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		if ip := net.ParseIP(strings.Trim(addr, "[]")); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}

// parseFirstIP returns the client entry of a "client, proxy1, proxy2" list,
// or "" when it is not an IP.
func parseFirstIP(s string) string {
	first, _, _ := strings.Cut(s, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
