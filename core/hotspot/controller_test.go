package hotspot

import (
	"testing"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/stretchr/testify/assert"
)

func newTestEntry(args []interface{}) *base.Entry {
	resource := base.NewResourceWrapper("res-hot", base.ResTypeCommon, base.Inbound)
	ctx := base.NewEntryContext("ctx-hot", "", nil)
	return base.NewEntry(ctx, resource, &base.Input{BatchCount: 1, Args: args})
}

func TestController_TokenBucketTripsOnSameValue(t *testing.T) {
	rule := &Rule{Resource: "res-hot", ParamIndex: 0, Threshold: 2, DurationInSec: 1, MetricType: MetricQPS}
	c := newController(rule)

	var blocked int
	for i := 0; i < 5; i++ {
		entry := newTestEntry([]interface{}{"hot-key"})
		if c.Check(entry).IsBlocked() {
			blocked++
		}
	}
	assert.Greater(t, blocked, 0)
}

func TestController_DistinctValuesIndependent(t *testing.T) {
	rule := &Rule{Resource: "res-hot-2", ParamIndex: 0, Threshold: 1, DurationInSec: 1, MetricType: MetricQPS}
	c := newController(rule)

	assert.True(t, c.Check(newTestEntry([]interface{}{"a"})).IsPass())
	assert.True(t, c.Check(newTestEntry([]interface{}{"b"})).IsPass())
}

func TestController_SequenceArgRejectsOnFirstFailure(t *testing.T) {
	rule := &Rule{Resource: "res-hot-3", ParamIndex: 0, Threshold: 1, DurationInSec: 1, MetricType: MetricQPS}
	c := newController(rule)

	// the first call for "x" takes its only token, so "x" fails inside the sequence.
	assert.True(t, c.Check(newTestEntry([]interface{}{"x"})).IsPass())

	entry := newTestEntry([]interface{}{[]string{"x", "y"}})
	assert.True(t, c.Check(entry).IsBlocked())
}

func TestController_NegativeParamIndexResolves(t *testing.T) {
	rule := &Rule{Resource: "res-hot-4", ParamIndex: -1, Threshold: 5, DurationInSec: 1, MetricType: MetricQPS}
	c := newController(rule)

	idx, ok := c.resolveIndex(2)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = c.resolveIndex(0)
	assert.False(t, ok)
}

func TestController_OutOfRangeParamIndexDoesNotMutateRule(t *testing.T) {
	rule := &Rule{Resource: "res-hot-5", ParamIndex: 9, Threshold: 5, DurationInSec: 1, MetricType: MetricQPS}
	c := newController(rule)

	entry := newTestEntry([]interface{}{"only-one-arg"})
	assert.True(t, c.Check(entry).IsPass())
	assert.Equal(t, 9, rule.ParamIndex)
}

func TestController_ConcurrencyMode(t *testing.T) {
	rule := &Rule{Resource: "res-hot-6", ParamIndex: 0, Threshold: 1, MetricType: MetricConcurrency}
	c := newController(rule)

	entry := newTestEntry([]interface{}{"busy-key"})
	assert.True(t, c.Check(entry).IsPass())

	c.metric.addThreadCount(paramKey("busy-key"), 1)
	assert.True(t, c.Check(entry).IsBlocked())
}
