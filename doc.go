// Package botfilter classifies HTTP requests as genuine browsers or as
// spiders and robots using the IAB/ABC International Spiders and Bots lists.
//
// A Classifier is built once from three reference sources:
//
//   - the IP ranges list: one address or CIDR block per line;
//   - the exclude list: pipe-delimited user agent patterns of known spiders,
//     with exception patterns, impact codes and inactive dates;
//   - the include list: pipe-delimited user agent patterns of valid browsers.
//
// Optional custom include and exclude substrings let operators override the
// reference data. Each call to Classify runs a fixed pipeline:
//
//  1. custom include match: browser;
//  2. custom exclude match: spider, reason failed_exclude_check;
//  3. IP address in the ranges list: spider, reason failed_ip_range;
//  4. no user agent: browser;
//  5. no include list match: spider, reason failed_include_check;
//  6. exclude list match: active or inactive spider, reason failed_exclude_check,
//     with the matched record's impact;
//  7. otherwise browser.
//
// Matching is case-insensitive with a fixed locale. The classifier is
// immutable after construction and safe for concurrent use.
//
// # Usage
//
//	c, err := botfilter.Open(botfilter.Sources{
//	    IPRanges: "ip_exclude_current_cidr.txt",
//	    Exclude:  "exclude_current.txt",
//	    Include:  "include_current.txt",
//	})
//	if err != nil {
//	    return err
//	}
//	v, err := c.Classify(r.UserAgent(), clientip.GetAddr(r))
//
// FromConfig builds the same classifier from environment configuration
// (see package config). Middleware wraps an http.Handler, stores the Verdict
// in the request context and can reject spiders or count verdicts in
// Prometheus.
//
// # Errors
//
// Construction failures wrap ErrMalformedInput together with the sentinel of
// the package that detected them (iprange.ErrMalformedEntry,
// agentlist.ErrMalformedRecord, iabfile.ErrMalformedFlag), so errors.Is works
// against either. Classify returns ErrInvalidArgument when both the user agent
// and the address are missing.
package botfilter
