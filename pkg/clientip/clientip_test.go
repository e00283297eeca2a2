package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/botfilter/pkg/clientip"
)

func TestGetAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name: "CF-Connecting-IP has priority",
			headers: map[string]string{
				"CF-Connecting-IP": "203.0.113.195",
				"DO-Connecting-IP": "198.51.100.178",
				"X-Forwarded-For":  "192.168.1.1",
				"X-Real-IP":        "10.0.0.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name: "DO-Connecting-IP before X-Forwarded-For",
			headers: map[string]string{
				"DO-Connecting-IP": "198.51.100.178",
				"X-Forwarded-For":  "192.168.1.1, 10.0.0.1",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name: "first X-Forwarded-For entry",
			headers: map[string]string{
				"X-Forwarded-For": "198.51.100.178, 203.0.113.195",
				"X-Real-IP":       "192.168.1.1",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name: "X-Forwarded-For skips garbage",
			headers: map[string]string{
				"X-Forwarded-For": "unknown, , 203.0.113.7",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "203.0.113.7",
		},
		{
			name: "X-Real-IP",
			headers: map[string]string{
				"X-Real-IP": "192.168.1.1",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "192.168.1.1",
		},
		{
			name: "invalid CF header falls through",
			headers: map[string]string{
				"CF-Connecting-IP": "invalid-ip",
				"DO-Connecting-IP": "198.51.100.178",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name:       "RemoteAddr fallback",
			remoteAddr: "127.0.0.1:8080",
			expected:   "127.0.0.1",
		},
		{
			name:       "RemoteAddr without port",
			remoteAddr: "192.0.2.10",
			expected:   "192.0.2.10",
		},
		{
			name:       "IPv6 RemoteAddr",
			remoteAddr: "[2001:db8::1]:443",
			expected:   "2001:db8::1",
		},
		{
			name: "bracketed IPv6 header",
			headers: map[string]string{
				"X-Real-IP": "[2001:db8::2]",
			},
			remoteAddr: "10.0.0.1:1",
			expected:   "2001:db8::2",
		},
		{
			name: "IPv4-mapped address is unmapped",
			headers: map[string]string{
				"X-Forwarded-For": "::ffff:12.0.0.1",
			},
			remoteAddr: "10.0.0.1:1",
			expected:   "12.0.0.1",
		},
		{
			name: "zone is dropped",
			headers: map[string]string{
				"X-Real-IP": "fe80::1%eth0",
			},
			remoteAddr: "10.0.0.1:1",
			expected:   "fe80::1",
		},
		{
			name:       "nothing valid",
			headers:    map[string]string{"X-Real-IP": "nope"},
			remoteAddr: "garbage",
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tt.expected, clientip.GetIP(req))

			addr := clientip.GetAddr(req)
			if tt.expected == "" {
				assert.False(t, addr.IsValid())
			} else {
				assert.Equal(t, netip.MustParseAddr(tt.expected), addr)
			}
		})
	}
}

func TestGetAddrFrom(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.1.1:5000"
	req.Header.Set("CF-Connecting-IP", "203.0.113.1")
	req.Header.Set("X-Client-IP", "198.51.100.9")

	t.Run("custom header", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, netip.MustParseAddr("198.51.100.9"), clientip.GetAddrFrom(req, "X-Client-IP"))
	})

	t.Run("no headers trusts RemoteAddr", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, netip.MustParseAddr("10.1.1.1"), clientip.GetAddrFrom(req))
	})

	t.Run("nil request", func(t *testing.T) {
		t.Parallel()
		assert.False(t, clientip.GetAddrFrom(nil).IsValid())
	})
}
