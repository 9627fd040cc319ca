package stat

import (
	"sync/atomic"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/config"
	"github.com/Sunshine-Research/Sentinel/core/stat/slidingwindow"
	"github.com/Sunshine-Research/Sentinel/logging"
	"github.com/Sunshine-Research/Sentinel/util"
)

// totalIntervalMs is the window the circuit breaker's exception-count
// grade reasons about: a full minute, regardless of the configured
// second-resolution sample count (spec.md §4.4, "exception count").
const (
	totalSampleCount = config.DefaultSampleCountTotal
	totalIntervalMs  = config.DefaultIntervalMsTotal
)

// StatisticNode is the primitive every node in the graph embeds: a
// second-resolution sliding window for QPS-grade decisions, a
// minute-resolution one for exception-count bookkeeping, and a live
// concurrency counter (spec.md §3, "Nodes").
type StatisticNode struct {
	secondMetric *slidingwindow.Metric
	totalMetric  *slidingwindow.Metric
	curConcurrency atomic.Int32
}

func NewStatisticNode() *StatisticNode {
	second, err := slidingwindow.NewMetric(config.MetricStatisticSampleCount(), config.MetricStatisticIntervalMs())
	if err != nil {
		logging.Errorf("invalid second-resolution window config, falling back to defaults: %v", err)
		second, _ = slidingwindow.NewMetric(config.DefaultSampleCount, config.DefaultIntervalMs)
	}
	total, err := slidingwindow.NewMetric(totalSampleCount, totalIntervalMs)
	if err != nil {
		logging.Errorf("invalid total-resolution window config: %v", err)
	}
	return &StatisticNode{secondMetric: second, totalMetric: total}
}

func (n *StatisticNode) AddCount(event base.MetricEvent, count int64) {
	n.secondMetric.AddCount(event, count)
	if n.totalMetric != nil {
		n.totalMetric.AddCount(event, count)
	}
}

func (n *StatisticNode) GetQPS(event base.MetricEvent) float64 {
	return n.secondMetric.GetQPS(event)
}

func (n *StatisticNode) GetPreviousQPS(event base.MetricEvent) float64 {
	return n.secondMetric.GetPreviousQPS(event)
}

func (n *StatisticNode) GetSum(event base.MetricEvent) int64 {
	return n.secondMetric.GetSum(event)
}

// GetTotalSum returns the minute-resolution total for event, used by the
// exception-count circuit breaker grade which counts over a full minute
// regardless of the rule's own timeWindowSec (spec.md §4.4).
func (n *StatisticNode) GetTotalSum(event base.MetricEvent) int64 {
	if n.totalMetric == nil {
		return n.secondMetric.GetSum(event)
	}
	return n.totalMetric.GetSum(event)
}

func (n *StatisticNode) MinRT() float64 { return n.secondMetric.MinRT() }
func (n *StatisticNode) AvgRT() float64 { return n.secondMetric.AvgRT() }

// TryOccupyNext reserves acquireCount units of pass capacity in the
// bucket immediately following the current one, admitting only if doing
// so would not push the window's pass plus occupied-pass total, summed
// as of that future bucket's start, over threshold. It
// returns the number of milliseconds the caller must sleep before the
// reservation becomes valid (spec.md §4.3, "prioritized ... query
// tryOccupyNext on the node").
func (n *StatisticNode) TryOccupyNext(acquireCount int64, threshold float64) (waitMs int64, ok bool) {
	now := util.CurrentTimeMillis()
	bucketLen := n.secondMetric.BucketLengthMs()
	nextBucketStart := now - now%bucketLen + bucketLen
	wait := int64(nextBucketStart - now)

	used := n.secondMetric.GetSumAt(nextBucketStart, base.MetricEventPass) +
		n.secondMetric.GetSumAt(nextBucketStart, base.MetricEventOccupiedPass)
	if float64(used)+float64(acquireCount) > threshold {
		return 0, false
	}
	n.secondMetric.AddCountAt(nextBucketStart, base.MetricEventOccupiedPass, acquireCount)
	n.secondMetric.AddCount(base.MetricEventWaiting, acquireCount)
	return wait, true
}

func (n *StatisticNode) CurrentConcurrency() int32 { return n.curConcurrency.Load() }
func (n *StatisticNode) IncreaseConcurrency()      { n.curConcurrency.Add(1) }
func (n *StatisticNode) DecreaseConcurrency() {
	for {
		cur := n.curConcurrency.Load()
		if cur <= 0 {
			return
		}
		if n.curConcurrency.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

var _ base.StatNode = (*StatisticNode)(nil)
