package agentlist

import (
	"io"
	"slices"
	"time"

	"github.com/dmitrymomot/botfilter/pkg/iabfile"
)

// ExcludeList is the ordered list of spider and robot user agent patterns.
// It is immutable and safe for concurrent use.
type ExcludeList struct {
	records []ExcludeRecord
}

// ExcludeMatch is the result of evaluating a user agent against an ExcludeList.
type ExcludeMatch struct {
	Present bool
	// Index is the position of the matched row in file order, -1 if none.
	Index  int
	Record ExcludeRecord
	// Active is true when the matched row has no inactive date or the
	// evaluation instant precedes it.
	Active bool
}

// InactiveDateSet reports whether the matched row carries a valid inactive date.
func (m ExcludeMatch) InactiveDateSet() bool {
	return m.Present && !m.Record.InactiveDate.IsZero()
}

// BeforeInactiveDate reports whether at is strictly before the matched row's
// inactive date.
func (m ExcludeMatch) BeforeInactiveDate(at time.Time) bool {
	return m.Present && beforeDate(at, m.Record.InactiveDate)
}

// Impact returns the matched row's impact, or ImpactNone without a match.
func (m ExcludeMatch) Impact() Impact {
	if !m.Present {
		return ImpactNone
	}
	return m.Record.Impact
}

// ParseExcludeList reads pipe-delimited exclude records:
// pattern | active | exceptions | unused | impact | anchored | inactive date.
func ParseExcludeList(r io.Reader, opts ...Option) (*ExcludeList, error) {
	o := applyOptions(opts)
	records, err := parseRecords(r, func(rec iabfile.Record) (ExcludeRecord, error) {
		return decodeExclude(rec, o.location)
	})
	if err != nil {
		return nil, err
	}
	return &ExcludeList{records: records}, nil
}

// NewExcludeList builds a list from decoded records, lowercasing patterns and
// exceptions. An empty impact becomes ImpactUnknown.
func NewExcludeList(records ...ExcludeRecord) *ExcludeList {
	out := make([]ExcludeRecord, len(records))
	for i, r := range records {
		r.Pattern = Lower(r.Pattern)
		r.Exceptions = LowerAll(r.Exceptions)
		if r.Impact == "" {
			r.Impact = ImpactUnknown
		}
		out[i] = r
	}
	return &ExcludeList{records: out}
}

// Evaluate returns the first enabled row, in file order, whose pattern occurs
// in ua and whose exception patterns do not.
func (l *ExcludeList) Evaluate(ua string, at time.Time) ExcludeMatch {
	return l.EvaluateLower(Lower(ua), at)
}

// EvaluateLower is Evaluate for an already lowercased user agent.
func (l *ExcludeList) EvaluateLower(ua string, at time.Time) ExcludeMatch {
	for i, r := range l.records {
		if r.Matches(ua) {
			return ExcludeMatch{
				Present: true,
				Index:   i,
				Record:  r,
				Active:  r.InactiveDate.IsZero() || beforeDate(at, r.InactiveDate),
			}
		}
	}
	return ExcludeMatch{Index: -1}
}

// Present reports whether ua matches an enabled row.
func (l *ExcludeList) Present(ua string, at time.Time) bool {
	return l.Evaluate(ua, at).Present
}

// Len returns the number of rows.
func (l *ExcludeList) Len() int { return len(l.records) }

// Records returns a copy of the rows in file order.
func (l *ExcludeList) Records() []ExcludeRecord { return slices.Clone(l.records) }
