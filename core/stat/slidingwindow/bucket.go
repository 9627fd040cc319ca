package slidingwindow

import (
	"sync/atomic"

	"github.com/Sunshine-Research/Sentinel/core/base"
)

// MetricBucket is the data a single time-bucket accumulates: a counter
// per MetricEvent plus the minimum observed RT (spec.md §3, "bucket").
// All fields are touched concurrently by entries landing in the same
// bucket, so every access goes through atomic ops.
type MetricBucket struct {
	counters [base.MetricEventCount]int64
	minRt    int64
}

func NewMetricBucket() *MetricBucket {
	return &MetricBucket{minRt: base.DefaultStatisticMaxRt}
}

func (b *MetricBucket) Add(event base.MetricEvent, count int64) {
	if event == base.MetricEventRt {
		b.AddRt(count)
		return
	}
	atomic.AddInt64(&b.counters[event], count)
}

func (b *MetricBucket) Get(event base.MetricEvent) int64 {
	return atomic.LoadInt64(&b.counters[event])
}

// AddRt folds an observed RT sample into the bucket's running minimum
// (spec.md §4.2: "the minimum RT value observed among its completed
// calls"), and also tallies it into the RT-sum counter so the caller can
// derive an average.
func (b *MetricBucket) AddRt(rt int64) {
	atomic.AddInt64(&b.counters[base.MetricEventRt], rt)
	for {
		cur := atomic.LoadInt64(&b.minRt)
		if rt >= cur {
			return
		}
		if atomic.CompareAndSwapInt64(&b.minRt, cur, rt) {
			return
		}
	}
}

func (b *MetricBucket) MinRt() int64 {
	return atomic.LoadInt64(&b.minRt)
}

func (b *MetricBucket) reset() {
	for i := range b.counters {
		atomic.StoreInt64(&b.counters[i], 0)
	}
	atomic.StoreInt64(&b.minRt, base.DefaultStatisticMaxRt)
}
