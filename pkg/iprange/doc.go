// Package iprange answers "is this address on the list?" for the IAB/ABC
// International IP exclusion list.
//
// A Set holds two kinds of entries parsed from a plain text list:
//
//   - bare addresses, matched when the line equals the query's String form;
//   - CIDR blocks, matched by prefix containment.
//
// Blocks live in a github.com/gaissmai/bart Lite table, so lookups cost a
// handful of memory accesses regardless of list size. IPv4 and IPv6 entries
// coexist and never match an address of the other family. Bare entries are
// compared as text, so "2001:0db8::1" does not match 2001:db8::1. IPv4-mapped
// IPv6 queries are unmapped for the block lookup only.
//
// # Usage
//
//	set, err := iprange.Parse(f)
//	if err != nil {
//	    return err
//	}
//	if set.Contains(netip.MustParseAddr("192.0.2.10")) {
//	    // request comes from a listed range
//	}
//
// A Set is immutable after construction and safe for concurrent use.
package iprange
