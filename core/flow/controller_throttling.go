package flow

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/util"
)

const nanosPerMs = int64(time.Millisecond)

// throttlingChecker is the leaky-bucket rate limiter (spec.md §4.3,
// "Rate limiter"). One instance is bound per TrafficShapingController,
// so latestPassedTime is effectively per-rule.
type throttlingChecker struct {
	maxQueueingTimeNs int64
	latestPassedTime  atomic.Int64
}

func newThrottlingChecker(rule *Rule) *throttlingChecker {
	return &throttlingChecker{maxQueueingTimeNs: int64(rule.MaxQueueingTimeMs) * nanosPerMs}
}

func (c *throttlingChecker) DoCheck(node base.StatNode, acquireCount uint32, threshold float64, rule *Rule, _ bool) *base.TokenResult {
	if acquireCount == 0 {
		return base.ResultPass()
	}
	if threshold <= 0 {
		return base.ResultBlocked(base.NewBlockErrorWithCause(base.BlockTypeFlow, rule.Resource,
			"flow throttling check blocked, threshold is <= 0", rule, nil))
	}

	costNs := int64(math.Ceil(float64(acquireCount) / threshold * float64(time.Second)))
	curNs := int64(util.CurrentTimeNanos())

	expected := c.latestPassedTime.Load() + costNs
	if expected <= curNs {
		c.latestPassedTime.Store(curNs)
		return base.ResultPass()
	}

	waitNs := c.latestPassedTime.Load() + costNs - int64(util.CurrentTimeNanos())
	if waitNs > c.maxQueueingTimeNs {
		return base.ResultBlocked(base.NewBlockErrorWithCause(base.BlockTypeFlow, rule.Resource,
			"flow throttling check blocked, estimated queueing time exceeds max queueing time", rule, nil))
	}

	newLatest := c.latestPassedTime.Add(costNs)
	waitNs = newLatest - int64(util.CurrentTimeNanos())
	if waitNs > c.maxQueueingTimeNs {
		c.latestPassedTime.Add(-costNs)
		return base.ResultBlocked(base.NewBlockErrorWithCause(base.BlockTypeFlow, rule.Resource,
			"flow throttling check blocked, estimated queueing time exceeds max queueing time", rule, nil))
	}
	if waitNs < 0 {
		waitNs = 0
	}
	return base.ResultShouldWait(time.Duration(waitNs))
}
