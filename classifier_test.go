package botfilter_test

import (
	"errors"
	"net/netip"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/botfilter"
	"github.com/dmitrymomot/botfilter/pkg/agentlist"
	"github.com/dmitrymomot/botfilter/pkg/iabfile"
	"github.com/dmitrymomot/botfilter/pkg/iprange"
)

var fixtureSources = botfilter.Sources{
	IPRanges: "testdata/ip_exclude_current_cidr.txt",
	Exclude:  "testdata/exclude_current.txt",
	Include:  "testdata/include_current.txt",
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newClassifier(t *testing.T, ips, exclude, include string, lists botfilter.CustomLists) *botfilter.Classifier {
	t.Helper()
	c, err := botfilter.NewWithCustomLists(
		strings.NewReader(ips),
		strings.NewReader(exclude),
		strings.NewReader(include),
		lists,
	)
	require.NoError(t, err)
	return c
}

func spiderVerdict(category botfilter.Category, reason botfilter.Reason, impact botfilter.Impact) botfilter.Verdict {
	return botfilter.Verdict{SpiderOrRobot: true, Category: category, Reason: reason, Impact: impact}
}

func TestClassify_Scenarios(t *testing.T) {
	t.Parallel()

	t.Run("ip range with non-canonical prefix", func(t *testing.T) {
		t.Parallel()

		c := newClassifier(t, "127.0.0.1/16\n", "", "", botfilter.CustomLists{})
		v, err := c.Classify("", netip.MustParseAddr("127.0.0.1"))
		require.NoError(t, err)
		assert.Equal(t, spiderVerdict(botfilter.CategorySpiderOrRobot, botfilter.ReasonFailedIPRange, botfilter.ImpactUnknown), v)

		v, err = c.Classify("", netip.MustParseAddr("127.0.255.255"))
		require.NoError(t, err)
		assert.True(t, v.SpiderOrRobot)

		v, err = c.Classify("", netip.MustParseAddr("127.1.0.0"))
		require.NoError(t, err)
		assert.Equal(t, botfilter.Browser, v)
	})

	t.Run("include miss", func(t *testing.T) {
		t.Parallel()

		c := newClassifier(t, "", "", "Browser|1|0\n", botfilter.CustomLists{})
		v, err := c.Classify("robot", netip.Addr{})
		require.NoError(t, err)
		assert.Equal(t, spiderVerdict(botfilter.CategorySpiderOrRobot, botfilter.ReasonFailedIncludeCheck, botfilter.ImpactUnknown), v)
	})

	t.Run("exclude hit and exception", func(t *testing.T) {
		t.Parallel()

		c := newClassifier(t, "10.0.0.0/8\n", "Tricky robot|1|exception|_|0|0|_\n", "Tricky|1|0\n", botfilter.CustomLists{})
		ip := netip.MustParseAddr("192.0.2.1")

		v, err := c.Classify("tricky robot", ip)
		require.NoError(t, err)
		assert.Equal(t, spiderVerdict(botfilter.CategoryActiveSpiderOrRobot, botfilter.ReasonFailedExcludeCheck, botfilter.ImpactPageImpressions), v)

		v, err = c.Classify("tricky exception robot", ip)
		require.NoError(t, err)
		assert.Equal(t, botfilter.Browser, v)
	})

	t.Run("custom include beats custom exclude", func(t *testing.T) {
		t.Parallel()

		c := newClassifier(t, "", "", "", botfilter.CustomLists{
			Include: []string{"TrustedBot"},
			Exclude: []string{"Bot"},
		})
		v, err := c.Classify("TrustedBot/1.0", netip.Addr{})
		require.NoError(t, err)
		assert.Equal(t, botfilter.Browser, v)

		v, err = c.Classify("OtherBot/1.0", netip.Addr{})
		require.NoError(t, err)
		assert.Equal(t, spiderVerdict(botfilter.CategorySpiderOrRobot, botfilter.ReasonFailedExcludeCheck, botfilter.CustomExcludeImpact), v)
	})

	t.Run("custom include beats ip range", func(t *testing.T) {
		t.Parallel()

		c := newClassifier(t, "10.0.0.0/8\n", "", "", botfilter.CustomLists{Include: []string{"monitor"}})
		v, err := c.Classify("Uptime MONITOR", netip.MustParseAddr("10.1.1.1"))
		require.NoError(t, err)
		assert.Equal(t, botfilter.Browser, v)
	})

	t.Run("ip check precedes user agent checks", func(t *testing.T) {
		t.Parallel()

		c := newClassifier(t, "10.0.0.0/8\n", "", "Mozilla|1|0\n", botfilter.CustomLists{})
		v, err := c.Classify("Mozilla/5.0", netip.MustParseAddr("10.1.1.1"))
		require.NoError(t, err)
		assert.Equal(t, botfilter.ReasonFailedIPRange, v.Reason)
	})

	t.Run("ip only outside ranges is browser", func(t *testing.T) {
		t.Parallel()

		c := newClassifier(t, "10.0.0.0/8\n", "", "Mozilla|1|0\n", botfilter.CustomLists{})
		v, err := c.Classify("", netip.MustParseAddr("192.0.2.1"))
		require.NoError(t, err)
		assert.Equal(t, botfilter.Browser, v)
	})

	t.Run("empty custom entries are ignored", func(t *testing.T) {
		t.Parallel()

		c := newClassifier(t, "", "", "Mozilla|1|0\n", botfilter.CustomLists{Include: []string{""}, Exclude: []string{"", "  "}})
		v, err := c.Classify("Mozilla/5.0", netip.Addr{})
		require.NoError(t, err)
		assert.Equal(t, botfilter.Browser, v)
		assert.Equal(t, 0, c.Stats().CustomInclude)
	})
}

func TestClassify_InvalidArguments(t *testing.T) {
	t.Parallel()

	c := newClassifier(t, "", "", "", botfilter.CustomLists{})

	_, err := c.Classify("", netip.Addr{})
	assert.ErrorIs(t, err, botfilter.ErrInvalidArgument)

	_, err = c.ClassifyAt("Mozilla", netip.Addr{}, time.Time{})
	assert.ErrorIs(t, err, botfilter.ErrInvalidArgument)

	_, err = c.ClassifyString("Mozilla", "not-an-ip")
	assert.ErrorIs(t, err, botfilter.ErrInvalidArgument)
}

func TestClassify_Clock(t *testing.T) {
	t.Parallel()

	exclude := "retired|0||0|1|0|01/01/2018\n"
	include := "bot|1|0\n"

	tests := []struct {
		name     string
		now      time.Time
		category botfilter.Category
	}{
		{name: "before inactive date", now: date(2017, time.December, 31), category: botfilter.CategoryActiveSpiderOrRobot},
		{name: "on inactive date", now: date(2018, time.January, 1), category: botfilter.CategoryInactiveSpiderOrRobot},
		{name: "after inactive date", now: date(2020, time.May, 5), category: botfilter.CategoryInactiveSpiderOrRobot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := botfilter.New(
				strings.NewReader(""),
				strings.NewReader(exclude),
				strings.NewReader(include),
				botfilter.WithClock(func() time.Time { return tt.now }),
			)
			require.NoError(t, err)

			v, err := c.Classify("Retired Bot", netip.Addr{})
			require.NoError(t, err)
			assert.Equal(t, spiderVerdict(tt.category, botfilter.ReasonFailedExcludeCheck, botfilter.ImpactAdImpressions), v)
		})
	}
}

func TestClassify_Location(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	c, err := botfilter.New(
		strings.NewReader(""),
		strings.NewReader("retired|0||0|1|0|01/01/2018\n"),
		strings.NewReader("bot|1|0\n"),
		botfilter.WithLocation(tokyo),
	)
	require.NoError(t, err)
	assert.Equal(t, tokyo, c.Location())

	// 2017-12-31 16:00 UTC is already 2018-01-01 in Tokyo.
	v, err := c.ClassifyAt("retired bot", netip.Addr{}, time.Date(2017, time.December, 31, 16, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, botfilter.CategoryInactiveSpiderOrRobot, v.Category)

	v, err = c.ClassifyAt("retired bot", netip.Addr{}, time.Date(2017, time.December, 31, 14, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, botfilter.CategoryActiveSpiderOrRobot, v.Category)
}

func TestClassify_FromFiles(t *testing.T) {
	t.Parallel()

	c, err := botfilter.OpenWithCustomLists(fixtureSources, botfilter.CustomLists{
		Include: []string{"PartnerPreview"},
		Exclude: []string{"LoadTester"},
	})
	require.NoError(t, err)

	outside := netip.MustParseAddr("192.0.2.44")
	early := date(2017, time.January, 1)
	late := date(2019, time.January, 1)

	tests := []struct {
		name string
		ua   string
		ip   netip.Addr
		at   time.Time
		want botfilter.Verdict
	}{
		{
			name: "plain browser",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
			ip:   outside,
			at:   early,
			want: botfilter.Browser,
		},
		{
			name: "ip inside cidr block",
			ua:   "Mozilla/5.0",
			ip:   netip.MustParseAddr("12.34.56.78"),
			at:   early,
			want: spiderVerdict(botfilter.CategorySpiderOrRobot, botfilter.ReasonFailedIPRange, botfilter.ImpactUnknown),
		},
		{
			name: "exact ip entry",
			ip:   netip.MustParseAddr("192.127.245.128"),
			at:   early,
			want: spiderVerdict(botfilter.CategorySpiderOrRobot, botfilter.ReasonFailedIPRange, botfilter.ImpactUnknown),
		},
		{
			name: "ipv6 block",
			ip:   netip.MustParseAddr("2001:db8::42"),
			at:   early,
			want: spiderVerdict(botfilter.CategorySpiderOrRobot, botfilter.ReasonFailedIPRange, botfilter.ImpactUnknown),
		},
		{
			name: "unknown agent fails include check",
			ua:   "Googlebot/2.1",
			ip:   outside,
			at:   early,
			want: spiderVerdict(botfilter.CategorySpiderOrRobot, botfilter.ReasonFailedIncludeCheck, botfilter.ImpactUnknown),
		},
		{
			name: "commented include record is ignored",
			ua:   "Commented browser",
			at:   early,
			want: spiderVerdict(botfilter.CategorySpiderOrRobot, botfilter.ReasonFailedIncludeCheck, botfilter.ImpactUnknown),
		},
		{
			name: "include record before inactive date",
			ua:   "Inactive Browser",
			at:   early,
			want: botfilter.Browser,
		},
		{
			name: "include record after inactive date",
			ua:   "Inactive Browser",
			at:   late,
			want: spiderVerdict(botfilter.CategorySpiderOrRobot, botfilter.ReasonFailedIncludeCheck, botfilter.ImpactUnknown),
		},
		{
			name: "exclude hit with both impacts",
			ua:   "Mozilla/4.0 (compatible; MSIE 5.0; Windows 98)",
			at:   early,
			want: spiderVerdict(botfilter.CategoryActiveSpiderOrRobot, botfilter.ReasonFailedExcludeCheck, botfilter.ImpactPageAndAdImpressions),
		},
		{
			name: "anchored exclude",
			ua:   "User Agent at the start only crawler",
			at:   early,
			want: spiderVerdict(botfilter.CategoryActiveSpiderOrRobot, botfilter.ReasonFailedExcludeCheck, botfilter.ImpactPageAndAdImpressions),
		},
		{
			name: "anchored exclude suppressed by exception",
			ua:   "User agent at the start only - User Agent Exclude",
			at:   early,
			want: botfilter.Browser,
		},
		{
			name: "exclude with exceptions",
			ua:   "xcho crawler",
			at:   early,
			want: spiderVerdict(botfilter.CategoryActiveSpiderOrRobot, botfilter.ReasonFailedExcludeCheck, botfilter.ImpactAdImpressions),
		},
		{
			name: "exception suppresses exclude",
			ua:   "XchoSerena crawler",
			at:   early,
			want: botfilter.Browser,
		},
		{
			name: "dated exclude still active",
			ua:   "retired crawler/1.0",
			at:   early,
			want: spiderVerdict(botfilter.CategoryActiveSpiderOrRobot, botfilter.ReasonFailedExcludeCheck, botfilter.ImpactAdImpressions),
		},
		{
			name: "dated exclude now inactive",
			ua:   "retired crawler/1.0",
			at:   late,
			want: spiderVerdict(botfilter.CategoryInactiveSpiderOrRobot, botfilter.ReasonFailedExcludeCheck, botfilter.ImpactAdImpressions),
		},
		{
			name: "disabled exclude record never matches",
			ua:   "disabled robot crawler",
			at:   early,
			want: botfilter.Browser,
		},
		{
			name: "custom include",
			ua:   "Googlebot PartnerPreview",
			ip:   netip.MustParseAddr("12.0.0.1"),
			at:   early,
			want: botfilter.Browser,
		},
		{
			name: "custom exclude",
			ua:   "Mozilla/5.0 loadtester",
			ip:   outside,
			at:   early,
			want: spiderVerdict(botfilter.CategorySpiderOrRobot, botfilter.ReasonFailedExcludeCheck, botfilter.ImpactPageAndAdImpressions),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := c.ClassifyAt(tt.ua, tt.ip, tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}

	stats := c.Stats()
	assert.Equal(t, 1, stats.IPExact)
	assert.Equal(t, 4, stats.IPBlocks)
	assert.Equal(t, 5, stats.IncludeRecords)
	assert.Equal(t, 6, stats.ExcludeRecords)
	assert.Equal(t, 1, stats.CustomInclude)
	assert.Equal(t, 1, stats.CustomExclude)
}

func TestNew_MalformedInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ips      string
		exclude  string
		include  string
		sentinel error
	}{
		{
			name:     "bad ip entry",
			ips:      "10.0.0.0/8\nnot-an-ip\n",
			sentinel: iprange.ErrMalformedEntry,
		},
		{
			name:     "bad include flag",
			include:  "Mozilla|yes|0\n",
			sentinel: iabfile.ErrMalformedFlag,
		},
		{
			name:     "bad exclude anchored flag",
			exclude:  "robot|1||0|0|2|\n",
			sentinel: iabfile.ErrMalformedFlag,
		},
		{
			name:     "bad impact code",
			exclude:  "robot|1||0|7|0|\n",
			sentinel: agentlist.ErrInvalidImpact,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := botfilter.New(strings.NewReader(tt.ips), strings.NewReader(tt.exclude), strings.NewReader(tt.include))
			require.Error(t, err)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, botfilter.ErrMalformedInput)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}

	t.Run("unparseable date is not an error", func(t *testing.T) {
		t.Parallel()

		_, err := botfilter.New(
			strings.NewReader(""),
			strings.NewReader("robot|0||0|0|0|someday\n"),
			strings.NewReader("robot|0|0|31/31/2020\n"),
		)
		assert.NoError(t, err)
	})

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()

		_, err := botfilter.New(nil, strings.NewReader(""), strings.NewReader(""))
		assert.ErrorIs(t, err, botfilter.ErrInvalidArgument)
	})
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("fixture files", func(t *testing.T) {
		t.Parallel()

		c, err := botfilter.Open(fixtureSources)
		require.NoError(t, err)
		assert.Equal(t, 5, c.Stats().IncludeRecords)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		src := fixtureSources
		src.Include = "testdata/does_not_exist.txt"
		_, err := botfilter.Open(src)
		assert.ErrorIs(t, err, botfilter.ErrOpeningSource)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := botfilter.Open(botfilter.Sources{})
		assert.ErrorIs(t, err, botfilter.ErrOpeningSource)
	})
}

func TestNewFromLists(t *testing.T) {
	t.Parallel()

	ips, err := iprange.New("203.0.113.0/24")
	require.NoError(t, err)
	include := agentlist.NewIncludeList(agentlist.IncludeRecord{Pattern: "Mozilla", Active: true})
	exclude := agentlist.NewExcludeList(agentlist.ExcludeRecord{Pattern: "HeadlessChrome", Active: true, Impact: agentlist.ImpactPageImpressions})

	c := botfilter.NewFromLists(ips, include, exclude, botfilter.CustomLists{})

	v, err := c.Classify("Mozilla/5.0 HeadlessChrome/120.0", netip.Addr{})
	require.NoError(t, err)
	assert.Equal(t, spiderVerdict(botfilter.CategoryActiveSpiderOrRobot, botfilter.ReasonFailedExcludeCheck, botfilter.ImpactPageImpressions), v)

	v, err = c.ClassifyString("", "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, botfilter.ReasonFailedIPRange, v.Reason)

	empty := botfilter.NewFromLists(nil, nil, nil, botfilter.CustomLists{})
	v, err = empty.Classify("anything", netip.Addr{})
	require.NoError(t, err)
	assert.Equal(t, botfilter.ReasonFailedIncludeCheck, v.Reason)
}

func TestClassify_Concurrent(t *testing.T) {
	t.Parallel()

	c, err := botfilter.Open(fixtureSources)
	require.NoError(t, err)

	at := date(2017, time.January, 1)
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for range 100 {
				v, err := c.ClassifyAt("xcho crawler", netip.AddrFrom4([4]byte{192, 0, 2, byte(i)}), at)
				assert.NoError(t, err)
				assert.Equal(t, botfilter.CategoryActiveSpiderOrRobot, v.Category)
			}
		}(i)
	}
	wg.Wait()
}

func BenchmarkClassify(b *testing.B) {
	c, err := botfilter.Open(fixtureSources)
	require.NoError(b, err)

	ip := netip.MustParseAddr("192.0.2.44")
	at := date(2017, time.January, 1)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = c.ClassifyAt("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36", ip, at)
	}
}
