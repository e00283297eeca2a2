package agentlist

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrymomot/botfilter/pkg/iabfile"
)

// exceptionSeparator splits the exception patterns column of the exclude list.
const exceptionSeparator = ","

// Include list columns.
const (
	includePattern = iota
	includeActive
	includeAnchored
	includeInactiveDate
)

// Exclude list columns. Column 3 (additional flag) is not used.
const (
	excludePattern = iota
	excludeActive
	excludeExceptions
	_
	excludeImpact
	excludeAnchored
	excludeInactiveDate
)

// matchPattern reports whether pattern occurs in ua, at the start only when
// anchored. Both arguments must already be lowercase.
func matchPattern(ua, pattern string, anchored bool) bool {
	if anchored {
		return strings.HasPrefix(ua, pattern)
	}
	return strings.Contains(ua, pattern)
}

// beforeDate reports whether at is strictly before a set date.
func beforeDate(at, date time.Time) bool {
	return !date.IsZero() && at.Before(date)
}

// IncludeRecord is one row of the include (valid browser) list.
type IncludeRecord struct {
	Pattern  string
	Active   bool
	Anchored bool
	// InactiveDate is the zero time when the row has no valid date.
	InactiveDate time.Time
}

// Matches reports whether the pattern occurs in a lowercase user agent.
// Dates are not considered.
func (r IncludeRecord) Matches(ua string) bool {
	return matchPattern(ua, r.Pattern, r.Anchored)
}

// BeforeInactiveDate reports whether at is strictly before the inactive date.
func (r IncludeRecord) BeforeInactiveDate(at time.Time) bool {
	return beforeDate(at, r.InactiveDate)
}

// Current reports whether the row is enforced at the given instant.
func (r IncludeRecord) Current(at time.Time) bool {
	return r.Active || r.BeforeInactiveDate(at)
}

// ExcludeRecord is one row of the exclude (spider and robot) list.
type ExcludeRecord struct {
	Pattern    string
	Active     bool
	Exceptions []string
	Impact     Impact
	Anchored   bool
	// InactiveDate is the zero time when the row has no valid date.
	InactiveDate time.Time
}

// Enabled reports whether the row takes part in matching at all. An inactive
// row without a valid inactive date is switched off.
func (r ExcludeRecord) Enabled() bool {
	return r.Active || !r.InactiveDate.IsZero()
}

// Matches reports whether an enabled row's pattern occurs in a lowercase user
// agent and none of its exception patterns do.
func (r ExcludeRecord) Matches(ua string) bool {
	if !r.Enabled() {
		return false
	}
	return matchPattern(ua, r.Pattern, r.Anchored) && !r.excepted(ua)
}

func (r ExcludeRecord) excepted(ua string) bool {
	for _, e := range r.Exceptions {
		if strings.Contains(ua, e) {
			return true
		}
	}
	return false
}

func decodeInclude(rec iabfile.Record, loc *time.Location) (IncludeRecord, error) {
	active, err := rec.Flag(includeActive)
	if err != nil {
		return IncludeRecord{}, err
	}
	anchored, err := rec.Flag(includeAnchored)
	if err != nil {
		return IncludeRecord{}, err
	}
	return IncludeRecord{
		Pattern:      Lower(rec.String(includePattern)),
		Active:       active,
		Anchored:     anchored,
		InactiveDate: rec.Date(includeInactiveDate, loc),
	}, nil
}

func decodeExclude(rec iabfile.Record, loc *time.Location) (ExcludeRecord, error) {
	active, err := rec.Flag(excludeActive)
	if err != nil {
		return ExcludeRecord{}, err
	}
	anchored, err := rec.Flag(excludeAnchored)
	if err != nil {
		return ExcludeRecord{}, err
	}
	impact := ImpactUnknown
	if rec.Has(excludeImpact) {
		if impact, err = ParseImpact(rec.String(excludeImpact)); err != nil {
			return ExcludeRecord{}, err
		}
	}
	return ExcludeRecord{
		Pattern:      Lower(rec.String(excludePattern)),
		Active:       active,
		Exceptions:   LowerAll(rec.List(excludeExceptions, exceptionSeparator)),
		Impact:       impact,
		Anchored:     anchored,
		InactiveDate: rec.Date(excludeInactiveDate, loc),
	}, nil
}

// parseRecords decodes every record of a list, keeping file order. The first
// failure aborts the whole list.
func parseRecords[R any](r io.Reader, decode func(iabfile.Record) (R, error)) ([]R, error) {
	reader := iabfile.NewReader(r)
	var out []R
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, errors.Join(ErrMalformedRecord, err)
		}
		v, err := decode(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, rec.Line, err)
		}
		out = append(out, v)
	}
}
