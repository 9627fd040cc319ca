package slidingwindow

import (
	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/util"
)

// Metric is the sliding-window statistics engine (spec.md §4.1): a
// LeapArray of sampleCount buckets spanning intervalInMs, exposing the
// base.ReadStat/WriteStat surface every StatNode embeds.
type Metric struct {
	bucketLengthMs uint64
	intervalMs     uint64
	leap           *LeapArray
}

func NewMetric(sampleCount, intervalInMs uint32) (*Metric, error) {
	if err := base.CheckValidityForStatistic(sampleCount, intervalInMs); err != nil {
		return nil, err
	}
	leap := NewLeapArray(sampleCount, intervalInMs)
	return &Metric{
		bucketLengthMs: leap.bucketLengthMs,
		intervalMs:     uint64(intervalInMs),
		leap:           leap,
	}, nil
}

func (m *Metric) intervalSeconds() float64 {
	return float64(m.intervalMs) / 1000.0
}

func (m *Metric) AddCount(event base.MetricEvent, count int64) {
	m.AddCountAt(util.CurrentTimeMillis(), event, count)
}

// AddCountAt folds count into whichever bucket owns timeMs, which may be
// a future bucket relative to now — used to reserve capacity ahead of
// time for the priority-wait occupy-next check (spec.md §4.3, "query
// tryOccupyNext on the node").
func (m *Metric) AddCountAt(timeMs uint64, event base.MetricEvent, count int64) {
	m.leap.currentBucketOfTime(timeMs).Bucket().Add(event, count)
}

func (m *Metric) GetSum(event base.MetricEvent) int64 {
	return m.GetSumAt(util.CurrentTimeMillis(), event)
}

// GetSumAt sums event across every non-stale bucket as of timeMs, which
// may be in the future relative to the wall clock.
func (m *Metric) GetSumAt(timeMs uint64, event base.MetricEvent) int64 {
	var sum int64
	for _, w := range m.leap.values(timeMs) {
		sum += w.Bucket().Get(event)
	}
	return sum
}

func (m *Metric) GetQPS(event base.MetricEvent) float64 {
	return float64(m.GetSum(event)) / m.intervalSeconds()
}

// GetPreviousQPS reports the QPS observed in the window immediately
// preceding the current one (shifted back by one full interval), used
// by the warm-up controller to detect a cold-to-warm transition
// (spec.md §4.3, "warm up").
func (m *Metric) GetPreviousQPS(event base.MetricEvent) float64 {
	now := util.CurrentTimeMillis() - m.intervalMs
	var sum int64
	for _, w := range m.leap.values(now) {
		sum += w.Bucket().Get(event)
	}
	return float64(sum) / m.intervalSeconds()
}

func (m *Metric) MinRT() float64 {
	now := util.CurrentTimeMillis()
	minRt := base.DefaultStatisticMaxRt
	for _, w := range m.leap.values(now) {
		if v := w.Bucket().MinRt(); v < minRt {
			minRt = v
		}
	}
	if minRt < 1 {
		minRt = 1
	}
	return float64(minRt)
}

func (m *Metric) AvgRT() float64 {
	complete := m.GetSum(base.MetricEventComplete)
	if complete <= 0 {
		return 0
	}
	return float64(m.GetSum(base.MetricEventRt)) / float64(complete)
}

// ValuesConditional exposes the non-stale raw buckets whose start time
// matches pred, as of now.
func (m *Metric) ValuesConditional(pred base.TimePredicate) []*BucketWrap {
	return m.leap.valuesConditional(util.CurrentTimeMillis(), pred)
}

func (m *Metric) BucketLengthMs() uint64 { return m.bucketLengthMs }
func (m *Metric) IntervalMs() uint64     { return m.intervalMs }
