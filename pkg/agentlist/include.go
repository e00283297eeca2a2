package agentlist

import (
	"io"
	"slices"
	"time"

	"github.com/dmitrymomot/botfilter/pkg/iabfile"
)

// IncludeList is the ordered list of user agent patterns of valid browsers.
// It is immutable and safe for concurrent use.
type IncludeList struct {
	records []IncludeRecord
}

// IncludeMatch is the result of evaluating a user agent against an IncludeList.
type IncludeMatch struct {
	Present bool
	// Index is the position of the matched row in file order, -1 if none.
	Index  int
	Record IncludeRecord
}

// ParseIncludeList reads pipe-delimited include records:
// pattern | active | anchored | inactive date.
func ParseIncludeList(r io.Reader, opts ...Option) (*IncludeList, error) {
	o := applyOptions(opts)
	records, err := parseRecords(r, func(rec iabfile.Record) (IncludeRecord, error) {
		return decodeInclude(rec, o.location)
	})
	if err != nil {
		return nil, err
	}
	return &IncludeList{records: records}, nil
}

// NewIncludeList builds a list from decoded records, lowercasing patterns.
func NewIncludeList(records ...IncludeRecord) *IncludeList {
	out := make([]IncludeRecord, len(records))
	for i, r := range records {
		r.Pattern = Lower(r.Pattern)
		out[i] = r
	}
	return &IncludeList{records: out}
}

// Evaluate returns the first row, in file order, whose pattern occurs in ua
// and which is current at the given instant.
func (l *IncludeList) Evaluate(ua string, at time.Time) IncludeMatch {
	return l.EvaluateLower(Lower(ua), at)
}

// EvaluateLower is Evaluate for an already lowercased user agent.
func (l *IncludeList) EvaluateLower(ua string, at time.Time) IncludeMatch {
	for i, r := range l.records {
		if r.Matches(ua) && r.Current(at) {
			return IncludeMatch{Present: true, Index: i, Record: r}
		}
	}
	return IncludeMatch{Index: -1}
}

// Present reports whether ua matches a current row.
func (l *IncludeList) Present(ua string, at time.Time) bool {
	return l.Evaluate(ua, at).Present
}

// Len returns the number of rows.
func (l *IncludeList) Len() int { return len(l.records) }

// Records returns a copy of the rows in file order.
func (l *IncludeList) Records() []IncludeRecord { return slices.Clone(l.records) }
