package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders lists the proxy headers consulted by GetAddr, highest priority first.
// X-Forwarded-For may hold a comma-separated chain; its first valid entry wins.
var DefaultHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetAddr returns the client address of r.
// Headers are checked in DefaultHeaders order, then RemoteAddr.
// The zero netip.Addr is returned when nothing parses.
func GetAddr(r *http.Request) netip.Addr {
	return GetAddrFrom(r, DefaultHeaders...)
}

// GetAddrFrom is GetAddr with an explicit header priority list.
// Passing no headers resolves from RemoteAddr only.
func GetAddrFrom(r *http.Request, headers ...string) netip.Addr {
	if r == nil {
		return netip.Addr{}
	}

	for _, h := range headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for candidate := range strings.SplitSeq(v, ",") {
			if addr, ok := parseAddr(candidate); ok {
				return addr
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port.
		host = r.RemoteAddr
	}
	addr, _ := parseAddr(host)
	return addr
}

// GetIP returns the client's IP address as a string, or "" when none is found.
func GetIP(r *http.Request) string {
	addr := GetAddr(r)
	if !addr.IsValid() {
		return ""
	}
	return addr.String()
}

// parseAddr accepts a bare address, optionally bracketed, and drops any zone.
// IPv4-mapped IPv6 addresses are unmapped.
func parseAddr(s string) (netip.Addr, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if s == "" {
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap().WithZone(""), true
}
