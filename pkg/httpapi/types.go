package httpapi

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/dmitrymomot/botfilter"
	"github.com/dmitrymomot/botfilter/pkg/iabfile"
)

// MaxBatchSize caps the number of requests in one batch call.
const MaxBatchSize = 1000

// Request is one classification query. Empty fields are absent; an empty At
// means now.
type Request struct {
	UserAgent string `json:"user_agent"`
	IP        string `json:"ip"`
	At        string `json:"at,omitempty"`
}

// Result is the answer to one Request. Exactly one of Verdict and Error is set.
type Result struct {
	Verdict *botfilter.Verdict `json:"verdict,omitempty"`
	Error   string             `json:"error,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// parse validates the textual fields of a request. Bare dates in At are
// read in loc.
func (q Request) parse(now time.Time, loc *time.Location) (netip.Addr, time.Time, error) {
	var addr netip.Addr
	if ip := strings.TrimSpace(q.IP); ip != "" {
		var err error
		if addr, err = netip.ParseAddr(ip); err != nil {
			return netip.Addr{}, time.Time{}, fmt.Errorf("%w: ip address %q", botfilter.ErrInvalidArgument, ip)
		}
	}
	at, err := ParseTime(q.At, loc)
	if err != nil {
		return netip.Addr{}, time.Time{}, err
	}
	if at.IsZero() {
		at = now
	}
	return addr, at, nil
}

// ParseTime accepts RFC 3339 or MM/DD/YYYY. A bare date is midnight in loc,
// which should be the zone the reference lists use (Classifier.Location);
// nil means UTC. Empty input is the zero time.
func ParseTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(iabfile.InactiveDateLayout, v, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, v)
	}
	return t, nil
}
