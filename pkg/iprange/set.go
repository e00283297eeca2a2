package iprange

import (
	"errors"
	"fmt"
	"io"
	"net/netip"
	"strings"

	"github.com/gaissmai/bart"

	"github.com/dmitrymomot/botfilter/pkg/iabfile"
)

// Set is an immutable collection of addresses and CIDR blocks.
type Set struct {
	exact  map[string]struct{}
	blocks *bart.Lite
	nb     int
}

// Parse reads one entry per line. Blank lines and "#" comments are skipped.
// Any other line must be an address or an address/prefix pair; host bits
// in a CIDR entry are allowed and masked off (127.0.0.1/16 is 127.0.0.0/16).
func Parse(r io.Reader) (*Set, error) {
	s := newSet()
	lr := iabfile.NewLineReader(r)
	for {
		line, err := lr.Read()
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		if err != nil {
			return nil, err
		}
		if err := s.add(line.Text); err != nil {
			return nil, fmt.Errorf("line %d: %w", line.Number, err)
		}
	}
}

// New builds a Set from in-memory entries using the same rules as Parse.
func New(entries ...string) (*Set, error) {
	s := newSet()
	for i, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" || e[0] == iabfile.Comment {
			continue
		}
		if err := s.add(e); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return s, nil
}

func newSet() *Set {
	return &Set{
		exact:  make(map[string]struct{}),
		blocks: new(bart.Lite),
	}
}

func (s *Set) add(entry string) error {
	if strings.Contains(entry, "/") {
		pfx, err := netip.ParsePrefix(entry)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrMalformedEntry, entry, err)
		}
		s.blocks.Insert(pfx.Masked())
		s.nb++
		return nil
	}

	if _, err := netip.ParseAddr(entry); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrMalformedEntry, entry, err)
	}
	s.exact[entry] = struct{}{}
	return nil
}

// Contains reports whether addr equals a bare entry or falls inside a block.
// Bare entries match on text: the line must equal addr.String(), so
// "2001:0db8::1" never matches 2001:db8::1 and "::ffff:10.0.0.1" never
// matches 10.0.0.1. The zero Addr is never contained.
func (s *Set) Contains(addr netip.Addr) bool {
	if s == nil || !addr.IsValid() {
		return false
	}
	addr = addr.WithZone("")
	if _, ok := s.exact[addr.String()]; ok {
		return true
	}
	return s.blocks.Contains(addr.Unmap())
}

// Len returns the number of entries, counting repeated bare lines once.
func (s *Set) Len() int { return s.LenExact() + s.LenBlocks() }

// LenExact returns the number of distinct bare address lines.
func (s *Set) LenExact() int { return len(s.exact) }

// LenBlocks returns the number of CIDR lines parsed.
func (s *Set) LenBlocks() int { return s.nb }
