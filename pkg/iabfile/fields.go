package iabfile

import (
	"strings"
	"time"
)

// InactiveDateLayout is the layout of the inactive date column (MM/DD/YYYY).
// Single-digit months and days are accepted as well.
const InactiveDateLayout = "1/2/2006"

const (
	flagTrue  = "1"
	flagFalse = "0"
)

// ParseFlag converts a "1"/"0" flag value. An empty value reads as false.
func ParseFlag(v string) (bool, error) {
	switch strings.TrimSpace(v) {
	case flagTrue:
		return true, nil
	case flagFalse, "":
		return false, nil
	default:
		return false, ErrMalformedFlag
	}
}

// ParseDate parses an inactive date in loc (UTC when nil).
// Blank or unparseable values return the zero time; they are never an error.
func ParseDate(v string, loc *time.Location) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(InactiveDateLayout, v, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Date parses field i with ParseDate.
func (r Record) Date(i int, loc *time.Location) time.Time {
	return ParseDate(r.String(i), loc)
}

// List splits field i on sep, trimming parts and dropping blank ones.
func (r Record) List(i int, sep string) []string {
	return SplitList(r.String(i), sep)
}

// SplitList splits v on sep, trimming parts and dropping blank ones.
func SplitList(v, sep string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(v, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
