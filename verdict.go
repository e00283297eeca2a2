package botfilter

import (
	"log/slog"

	"github.com/dmitrymomot/botfilter/pkg/agentlist"
)

// Category is the coarse classification of a request.
type Category string

const (
	CategoryBrowser               Category = "browser"
	CategorySpiderOrRobot         Category = "spider_or_robot"
	CategoryActiveSpiderOrRobot   Category = "active_spider_or_robot"
	CategoryInactiveSpiderOrRobot Category = "inactive_spider_or_robot"
)

// Reason names the pipeline step that produced a verdict.
type Reason string

const (
	ReasonPassedAllChecks    Reason = "passed_all_checks"
	ReasonFailedIPRange      Reason = "failed_ip_range"
	ReasonFailedIncludeCheck Reason = "failed_include_check"
	ReasonFailedExcludeCheck Reason = "failed_exclude_check"
)

// Impact is the kind of traffic a spider inflates.
type Impact = agentlist.Impact

const (
	ImpactNone                 = agentlist.ImpactNone
	ImpactUnknown              = agentlist.ImpactUnknown
	ImpactPageImpressions      = agentlist.ImpactPageImpressions
	ImpactAdImpressions        = agentlist.ImpactAdImpressions
	ImpactPageAndAdImpressions = agentlist.ImpactPageAndAdImpressions
)

// CustomExcludeImpact is attributed to matches against the caller's custom
// exclude list, which carries no per-entry impact.
const CustomExcludeImpact = ImpactPageAndAdImpressions

// Verdict is the outcome of one classification.
// A browser verdict always has Category browser, Reason passed_all_checks and Impact none.
type Verdict struct {
	SpiderOrRobot bool     `json:"spider_or_robot"`
	Category      Category `json:"category"`
	Reason        Reason   `json:"reason"`
	Impact        Impact   `json:"impact"`
}

// Browser is the verdict for a request that passed every check.
var Browser = Verdict{
	Category: CategoryBrowser,
	Reason:   ReasonPassedAllChecks,
	Impact:   ImpactNone,
}

func spider(category Category, reason Reason, impact Impact) Verdict {
	return Verdict{
		SpiderOrRobot: true,
		Category:      category,
		Reason:        reason,
		Impact:        impact,
	}
}

// IsBrowser reports whether v passed all checks.
func (v Verdict) IsBrowser() bool { return !v.SpiderOrRobot }

// LogValue groups the verdict fields for structured logging.
func (v Verdict) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("spider_or_robot", v.SpiderOrRobot),
		slog.String("category", string(v.Category)),
		slog.String("reason", string(v.Reason)),
		slog.String("impact", v.Impact.String()),
	)
}
