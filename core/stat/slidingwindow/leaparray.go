package slidingwindow

import (
	"runtime"
	"sync/atomic"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/util"
)

// BucketWrap pins one slot of the ring to a bucket-aligned start time and
// the MetricBucket currently occupying it (spec.md §4.1, "bucket").
type BucketWrap struct {
	bucketStart atomic.Uint64
	bucket      atomic.Pointer[MetricBucket]
}

func (w *BucketWrap) Bucket() *MetricBucket { return w.bucket.Load() }
func (w *BucketWrap) BucketStart() uint64   { return w.bucketStart.Load() }

func newBucketWrap(start uint64) *BucketWrap {
	w := &BucketWrap{}
	w.bucketStart.Store(start)
	w.bucket.Store(NewMetricBucket())
	return w
}

func calculateStartTime(now, bucketLengthMs uint64) uint64 {
	return now - (now % bucketLengthMs)
}

// LeapArray is a fixed-size ring of BucketWraps spanning intervalMs,
// rotated lazily as time passes (spec.md §4.1). Slots are claimed by a
// CAS on bucketStart, so concurrent callers landing in the same stale
// slot race for exactly one winner instead of taking a lock.
type LeapArray struct {
	bucketLengthMs uint64
	sampleCount    uint32
	intervalMs     uint64
	array          []*BucketWrap
}

func NewLeapArray(sampleCount, intervalInMs uint32) *LeapArray {
	bucketLengthMs := uint64(intervalInMs) / uint64(sampleCount)
	now := util.CurrentTimeMillis()
	start := calculateStartTime(now, bucketLengthMs)
	array := make([]*BucketWrap, sampleCount)
	for i := range array {
		array[i] = newBucketWrap(start - uint64(i)*bucketLengthMs)
	}
	return &LeapArray{
		bucketLengthMs: bucketLengthMs,
		sampleCount:    sampleCount,
		intervalMs:     uint64(intervalInMs),
		array:          array,
	}
}

func (la *LeapArray) calculateTimeIdx(now uint64) int {
	return int((now / la.bucketLengthMs) % uint64(len(la.array)))
}

// currentBucketOfTime returns the bucket that owns now. If now falls
// behind the slot's current bucketStart (the clock moved backward, or a
// very late caller raced a rotation), it returns a detached bucket that
// is never written into the ring — callers see a consistent fresh bucket
// for that one call instead of an error, and the ring itself is
// untouched (spec.md §4.1, "never written back").
func (la *LeapArray) currentBucketOfTime(now uint64) *BucketWrap {
	idx := la.calculateTimeIdx(now)
	bucketStart := calculateStartTime(now, la.bucketLengthMs)

	for {
		wrap := la.array[idx]
		old := wrap.bucketStart.Load()
		switch {
		case old == bucketStart:
			return wrap
		case bucketStart > old:
			if wrap.bucketStart.CompareAndSwap(old, bucketStart) {
				wrap.bucket.Store(NewMetricBucket())
				return wrap
			}
			runtime.Gosched()
		default:
			return newBucketWrap(bucketStart)
		}
	}
}

func (la *LeapArray) isDeprecated(now uint64, w *BucketWrap) bool {
	ws := w.bucketStart.Load()
	return now < ws || now-ws > la.intervalMs
}

// values returns every non-deprecated bucket as of now, oldest first is
// not guaranteed (spec.md §4.1 only requires "all buckets currently
// inside the window").
func (la *LeapArray) values(now uint64) []*BucketWrap {
	out := make([]*BucketWrap, 0, len(la.array))
	for _, w := range la.array {
		if la.isDeprecated(now, w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func (la *LeapArray) valuesConditional(now uint64, pred base.TimePredicate) []*BucketWrap {
	out := make([]*BucketWrap, 0, len(la.array))
	for _, w := range la.array {
		if la.isDeprecated(now, w) || !pred(w.bucketStart.Load()) {
			continue
		}
		out = append(out, w)
	}
	return out
}
