// Package fetcher retrieves web pages for summarization and turns them into
// bounded plain text.
package fetcher

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"tldr/internal/domain/entity"
)

// validateURL validates a URL for security before making an HTTP request.
// Syntax checks come from entity.ValidateURL. When denyPrivateIPs is set the
// host is resolved and every address is checked with isPrivateIP, which
// prevents Server-Side Request Forgery (SSRF) against internal services.
//
// Blocked IP ranges (when denyPrivateIPs is true):
//   - 127.0.0.0/8, ::1 (loopback)
//   - 10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/16, fc00::/7 (private)
//   - 169.254.0.0/16, fe80::/10 (link-local)
//   - 0.0.0.0, :: (unspecified)
func validateURL(ctx context.Context, urlStr string, denyPrivateIPs bool) error {
	if err := entity.ValidateURL(urlStr); err != nil {
		return err
	}

	if !denyPrivateIPs {
		return nil
	}

	// ValidateURL already proved the URL parses and has a host.
	u, _ := url.Parse(urlStr)
	hostname := u.Hostname()

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", entity.ErrFetch, hostname, err)
	}

	for _, addr := range addrs {
		if isPrivateIP(addr.IP) {
			return fmt.Errorf("%w: hostname '%s' resolves to %s", ErrPrivateIP, hostname, addr.IP.String())
		}
	}

	return nil
}

// isPrivateIP checks if an IP address is in a private, loopback,
// link-local or unspecified range. Both IPv4 and IPv6 are supported.
//
// Reference:
//   - https://tools.ietf.org/html/rfc1918 (Private IPv4)
//   - https://tools.ietf.org/html/rfc4193 (Private IPv6)
//   - https://tools.ietf.org/html/rfc3927 (Link-local IPv4)
//   - https://tools.ietf.org/html/rfc4291 (Link-local IPv6)
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified()
}
