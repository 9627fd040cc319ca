package circuitbreaker

import (
	"testing"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/stat"
	"github.com/stretchr/testify/assert"
)

func TestBreaker_ExceptionCountTrips(t *testing.T) {
	stat.ResetForTest()
	node := stat.GetOrCreateClusterNode("res-degrade-count", base.ResTypeCommon)
	rule := &Rule{Resource: "res-degrade-count", Grade: GradeExceptionCount, Threshold: 3, TimeWindowSec: 10}
	b := NewBreaker(rule, node)

	node.AddCount(base.MetricEventError, 3)
	result := b.TryPass()
	assert.True(t, result.IsBlocked())

	// once open, every subsequent call is blocked regardless of stats.
	result = b.TryPass()
	assert.True(t, result.IsBlocked())
}

func TestBreaker_AvgRTProbationThenTrip(t *testing.T) {
	stat.ResetForTest()
	node := stat.GetOrCreateClusterNode("res-degrade-rt", base.ResTypeCommon)
	rule := &Rule{Resource: "res-degrade-rt", Grade: GradeAvgRT, Threshold: 10, TimeWindowSec: 10}
	b := NewBreaker(rule, node)

	// push the average response time above threshold.
	for i := 0; i < 5; i++ {
		node.AddCount(base.MetricEventRt, 100)
		node.AddCount(base.MetricEventComplete, 1)
	}

	var blocked bool
	for i := 0; i < probationLimit; i++ {
		if b.TryPass().IsBlocked() {
			blocked = true
			break
		}
	}
	assert.True(t, blocked)
}

func TestBreaker_PassesUnderThreshold(t *testing.T) {
	stat.ResetForTest()
	node := stat.GetOrCreateClusterNode("res-degrade-ok", base.ResTypeCommon)
	rule := &Rule{Resource: "res-degrade-ok", Grade: GradeExceptionCount, Threshold: 100, TimeWindowSec: 10}
	b := NewBreaker(rule, node)

	node.AddCount(base.MetricEventError, 1)
	assert.True(t, b.TryPass().IsPass())
}
