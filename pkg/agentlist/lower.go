package agentlist

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers keep transformation state, so each goroutine takes its own.
var lowerCasers = sync.Pool{
	New: func() any {
		c := cases.Lower(language.English)
		return &c
	},
}

// Lower folds s with fixed English casing rules, independent of the host locale.
func Lower(s string) string {
	if s == "" {
		return s
	}
	c := lowerCasers.Get().(*cases.Caser)
	out := c.String(s)
	lowerCasers.Put(c)
	return out
}

// LowerAll folds every element, dropping empty strings. It returns nil for
// an empty input.
func LowerAll(ss []string) []string {
	if len(ss) == 0 {
		return nil
	}
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = Lower(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
