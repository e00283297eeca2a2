package botfilter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/netip"
	"strings"
	"time"

	"github.com/dmitrymomot/botfilter/pkg/agentlist"
	"github.com/dmitrymomot/botfilter/pkg/iprange"
	"github.com/dmitrymomot/botfilter/pkg/logger"
)

// CustomLists holds operator supplied substrings checked before the reference
// lists. Include entries force a browser verdict, exclude entries a spider one.
type CustomLists struct {
	Include []string
	Exclude []string
}

// Classifier evaluates requests against the IAB/ABC spiders and robots lists.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	ips     *iprange.Set
	include *agentlist.IncludeList
	exclude *agentlist.ExcludeList

	customInclude []string
	customExclude []string

	log *slog.Logger
	now func() time.Time
	loc *time.Location
}

// New builds a classifier from the three reference sources: the IP ranges
// list, the exclude (spiders and robots) list and the include (browsers) list.
func New(ipRanges, exclude, include io.Reader, opts ...Option) (*Classifier, error) {
	return NewWithCustomLists(ipRanges, exclude, include, CustomLists{}, opts...)
}

// NewWithCustomLists is New with operator include and exclude substrings.
// Entries are lowercased; empty entries are dropped.
func NewWithCustomLists(ipRanges, exclude, include io.Reader, lists CustomLists, opts ...Option) (*Classifier, error) {
	if ipRanges == nil || exclude == nil || include == nil {
		return nil, fmt.Errorf("%w: nil reference source", ErrInvalidArgument)
	}

	c := newClassifier(opts)
	start := time.Now()

	ips, err := iprange.Parse(ipRanges)
	if err != nil {
		return nil, fmt.Errorf("%w: ip ranges: %w", ErrMalformedInput, err)
	}
	ex, err := agentlist.ParseExcludeList(exclude, agentlist.WithLocation(c.loc))
	if err != nil {
		return nil, fmt.Errorf("%w: exclude list: %w", ErrMalformedInput, err)
	}
	in, err := agentlist.ParseIncludeList(include, agentlist.WithLocation(c.loc))
	if err != nil {
		return nil, fmt.Errorf("%w: include list: %w", ErrMalformedInput, err)
	}

	c.assemble(ips, in, ex, lists)
	c.log.Debug("reference lists loaded",
		logger.Count("ip_exact", ips.LenExact()),
		logger.Count("ip_blocks", ips.LenBlocks()),
		logger.Count("include_records", in.Len()),
		logger.Count("exclude_records", ex.Len()),
		logger.Count("custom_include", len(c.customInclude)),
		logger.Count("custom_exclude", len(c.customExclude)),
		logger.Duration(time.Since(start)),
	)
	return c, nil
}

// NewFromLists builds a classifier from already constructed lists.
// Nil lists behave as empty ones.
func NewFromLists(ips *iprange.Set, include *agentlist.IncludeList, exclude *agentlist.ExcludeList, lists CustomLists, opts ...Option) *Classifier {
	c := newClassifier(opts)
	if ips == nil {
		ips, _ = iprange.New()
	}
	if include == nil {
		include = agentlist.NewIncludeList()
	}
	if exclude == nil {
		exclude = agentlist.NewExcludeList()
	}
	c.assemble(ips, include, exclude, lists)
	return c
}

func (c *Classifier) assemble(ips *iprange.Set, in *agentlist.IncludeList, ex *agentlist.ExcludeList, lists CustomLists) {
	c.ips = ips
	c.include = in
	c.exclude = ex
	c.customInclude = agentlist.LowerAll(lists.Include)
	c.customExclude = agentlist.LowerAll(lists.Exclude)
}

// Location returns the time zone inactive dates are interpreted in.
func (c *Classifier) Location() *time.Location { return c.loc }

// Classify evaluates a request at the classifier's current time.
// An empty ua and a zero ip mean the signal is absent; at least one is required.
func (c *Classifier) Classify(ua string, ip netip.Addr) (Verdict, error) {
	return c.ClassifyAt(ua, ip, c.now())
}

// ClassifyAt evaluates a request as of the given instant.
func (c *Classifier) ClassifyAt(ua string, ip netip.Addr, at time.Time) (Verdict, error) {
	hasUA := ua != ""
	if !hasUA && !ip.IsValid() {
		return Verdict{}, fmt.Errorf("%w: user agent and ip address are both missing", ErrInvalidArgument)
	}
	if at.IsZero() {
		return Verdict{}, fmt.Errorf("%w: evaluation time is zero", ErrInvalidArgument)
	}

	var lower string
	if hasUA {
		lower = agentlist.Lower(ua)
		if containsAny(lower, c.customInclude) {
			return Browser, nil
		}
		if containsAny(lower, c.customExclude) {
			return spider(CategorySpiderOrRobot, ReasonFailedExcludeCheck, CustomExcludeImpact), nil
		}
	}

	if ip.IsValid() && c.ips.Contains(ip) {
		return spider(CategorySpiderOrRobot, ReasonFailedIPRange, ImpactUnknown), nil
	}

	if !hasUA {
		return Browser, nil
	}

	if !c.include.EvaluateLower(lower, at).Present {
		return spider(CategorySpiderOrRobot, ReasonFailedIncludeCheck, ImpactUnknown), nil
	}

	if m := c.exclude.EvaluateLower(lower, at); m.Present {
		category := CategoryInactiveSpiderOrRobot
		if m.Active {
			category = CategoryActiveSpiderOrRobot
		}
		return spider(category, ReasonFailedExcludeCheck, m.Impact()), nil
	}

	return Browser, nil
}

// ClassifyString is Classify with a textual address. An empty ip is absent;
// an unparsable one is an ErrInvalidArgument.
func (c *Classifier) ClassifyString(ua, ip string) (Verdict, error) {
	addr, err := parseAddr(ip)
	if err != nil {
		return Verdict{}, err
	}
	return c.Classify(ua, addr)
}

// ClassifyContext is Classify that records failures on the context logger.
func (c *Classifier) ClassifyContext(ctx context.Context, ua string, ip netip.Addr) (Verdict, error) {
	v, err := c.Classify(ua, ip)
	if err != nil {
		c.log.DebugContext(ctx, "classification skipped", logger.UserAgent(ua), logger.IP(ip), logger.Error(err))
	}
	return v, err
}

// Stats reports the size of the loaded reference data.
type Stats struct {
	IPExact        int `json:"ip_exact"`
	IPBlocks       int `json:"ip_blocks"`
	IncludeRecords int `json:"include_records"`
	ExcludeRecords int `json:"exclude_records"`
	CustomInclude  int `json:"custom_include"`
	CustomExclude  int `json:"custom_exclude"`
}

// Stats returns the size of the loaded reference data.
func (c *Classifier) Stats() Stats {
	return Stats{
		IPExact:        c.ips.LenExact(),
		IPBlocks:       c.ips.LenBlocks(),
		IncludeRecords: c.include.Len(),
		ExcludeRecords: c.exclude.Len(),
		CustomInclude:  len(c.customInclude),
		CustomExclude:  len(c.customExclude),
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func parseAddr(s string) (netip.Addr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return netip.Addr{}, nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: ip address %q: %w", ErrInvalidArgument, s, err)
	}
	return addr, nil
}
