package agentlist

import "fmt"

// Impact tells which traffic counters a matched spider or robot affects.
type Impact string

const (
	// ImpactNone is used for browsers.
	ImpactNone Impact = "none"

	// ImpactUnknown is used when no impact data is available.
	ImpactUnknown Impact = "unknown"

	// ImpactPageImpressions (code 0) affects page impression counts.
	ImpactPageImpressions Impact = "page_impressions"

	// ImpactAdImpressions (code 1) affects ad impression counts.
	ImpactAdImpressions Impact = "ad_impressions"

	// ImpactPageAndAdImpressions (code 2) affects both.
	ImpactPageAndAdImpressions Impact = "page_and_ad_impressions"
)

// ParseImpact converts a primary impact flag from the exclude list.
func ParseImpact(code string) (Impact, error) {
	switch code {
	case "0":
		return ImpactPageImpressions, nil
	case "1":
		return ImpactAdImpressions, nil
	case "2":
		return ImpactPageAndAdImpressions, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidImpact, code)
	}
}

func (i Impact) String() string { return string(i) }
