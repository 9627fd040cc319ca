package cluster

import (
	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/stat/slidingwindow"
)

// globalRequestLimiter is the namespace-wide safety cap enforced before
// any per-flowId rule evaluation runs (spec.md §4.7, "GlobalRequestLimiter
// enforces a safety cap ... before any rule evaluation").
type globalRequestLimiter struct {
	limitQPS float64
	metric   *slidingwindow.Metric
}

func newGlobalRequestLimiter(limitQPS float64) *globalRequestLimiter {
	metric, _ := slidingwindow.NewMetric(20, 1000)
	return &globalRequestLimiter{limitQPS: limitQPS, metric: metric}
}

func (l *globalRequestLimiter) tryAcquire(count int64) bool {
	if l.metric.GetQPS(base.MetricEventPass)+float64(count) > l.limitQPS {
		return false
	}
	l.metric.AddCount(base.MetricEventPass, count)
	return true
}
