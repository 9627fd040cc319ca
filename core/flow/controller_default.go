package flow

import (
	"time"

	"github.com/Sunshine-Research/Sentinel/core/base"
)

// directCalculator always allows the rule's configured threshold — the
// non-warm-up case (spec.md §4.3, "Default").
type directCalculator struct {
	threshold float64
}

func (d *directCalculator) CalculateAllowedTokens(base.StatNode, uint32) float64 {
	return d.threshold
}

// rejectChecker is the immediate-reject controller: pass iff current
// usage plus the requested count stays within threshold, with an
// optional priority-wait fallback for QPS-grade prioritized calls
// (spec.md §4.3, "Default (immediate reject)").
type rejectChecker struct{}

func (r *rejectChecker) DoCheck(node base.StatNode, acquireCount uint32, threshold float64, rule *Rule, prioritized bool) *base.TokenResult {
	if node == nil {
		return base.ResultPass()
	}

	var currentUsage float64
	if rule.Grade == GradeThread {
		currentUsage = float64(node.CurrentConcurrency())
	} else {
		currentUsage = node.GetQPS(base.MetricEventPass)
	}

	if currentUsage+float64(acquireCount) <= threshold {
		return base.ResultPass()
	}

	if prioritized && rule.Grade == GradeQPS {
		if waitMs, ok := node.TryOccupyNext(int64(acquireCount), threshold); ok {
			timeout := rule.occupyTimeoutMs()
			if waitMs <= int64(timeout) {
				return base.ResultShouldWait(time.Duration(waitMs) * time.Millisecond)
			}
		}
	}

	return base.ResultBlocked(base.NewBlockErrorWithCause(base.BlockTypeFlow, rule.Resource,
		"flow reject check blocked", rule, currentUsage))
}
