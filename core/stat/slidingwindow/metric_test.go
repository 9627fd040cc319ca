package slidingwindow

import (
	"testing"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/stretchr/testify/assert"
)

func TestMetric_InvalidParams(t *testing.T) {
	_, err := NewMetric(0, 1000)
	assert.Error(t, err)

	_, err = NewMetric(3, 1000)
	assert.Error(t, err)
}

func TestMetric_AddAndSum(t *testing.T) {
	m, err := NewMetric(2, 1000)
	assert.NoError(t, err)

	m.AddCount(base.MetricEventPass, 5)
	m.AddCount(base.MetricEventPass, 3)
	m.AddCount(base.MetricEventBlock, 1)

	assert.EqualValues(t, 8, m.GetSum(base.MetricEventPass))
	assert.EqualValues(t, 1, m.GetSum(base.MetricEventBlock))
	assert.EqualValues(t, 0, m.GetSum(base.MetricEventError))
}

func TestMetric_MinRT(t *testing.T) {
	m, err := NewMetric(2, 1000)
	assert.NoError(t, err)

	assert.Equal(t, float64(base.DefaultStatisticMaxRt), m.MinRT())

	m.AddCount(base.MetricEventRt, 42)
	m.AddCount(base.MetricEventComplete, 1)
	assert.Equal(t, float64(42), m.MinRT())
	assert.Equal(t, float64(42), m.AvgRT())
}

func TestMetric_AvgRTWithNoCompletions(t *testing.T) {
	m, err := NewMetric(2, 1000)
	assert.NoError(t, err)
	assert.Equal(t, float64(0), m.AvgRT())
}

func TestLeapArray_BackwardClockIsDetached(t *testing.T) {
	la := NewLeapArray(2, 1000)
	now := la.array[0].bucketStart.Load()

	// A call far in the past relative to the ring's current bucket must
	// not mutate the ring: it gets a detached fresh bucket instead.
	past := la.currentBucketOfTime(now - 10_000)
	past.Bucket().Add(base.MetricEventPass, 99)

	live := la.currentBucketOfTime(now)
	assert.EqualValues(t, 0, live.Bucket().Get(base.MetricEventPass))
}
