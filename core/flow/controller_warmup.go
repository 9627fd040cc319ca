package flow

import (
	"math"
	"sync/atomic"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/config"
	"github.com/Sunshine-Research/Sentinel/logging"
	"github.com/Sunshine-Research/Sentinel/util"
)

// warmUpCalculator implements the warm-up token bucket (spec.md §4.1
// "Warm-up token bucket", §4.3 "Warm-up"): a cold service starts out
// admitting at a fraction of threshold and ramps up to full rate over
// warmUpPeriodSec as observed QPS climbs.
type warmUpCalculator struct {
	threshold    float64
	coldFactor   uint32
	warningToken uint64
	maxToken     uint64
	slope        float64

	storedTokens   atomic.Int64
	lastFilledTime atomic.Uint64
}

func newWarmUpCalculator(rule *Rule) *warmUpCalculator {
	coldFactor := rule.WarmUpColdFactor
	if coldFactor <= 1 {
		coldFactor = config.DefaultWarmUpColdFactor
		logging.Warnf("flow rule %s has no usable warmUpColdFactor, defaulting to %d", rule.Resource, coldFactor)
	}

	warningToken := uint64(float64(rule.WarmUpPeriodSec) * rule.Threshold / float64(coldFactor-1))
	maxToken := warningToken + uint64(2*float64(rule.WarmUpPeriodSec)*rule.Threshold/float64(1+coldFactor))
	slope := float64(coldFactor-1) / rule.Threshold / float64(maxToken-warningToken)

	return &warmUpCalculator{
		threshold:    rule.Threshold,
		coldFactor:   coldFactor,
		warningToken: warningToken,
		maxToken:     maxToken,
		slope:        slope,
	}
}

func (c *warmUpCalculator) CalculateAllowedTokens(node base.StatNode, _ uint32) float64 {
	previousQps := node.GetPreviousQPS(base.MetricEventPass)
	c.syncToken(previousQps)

	stored := c.storedTokens.Load()
	if stored < 0 {
		stored = 0
	}
	if stored < int64(c.warningToken) {
		return c.threshold
	}
	aboveToken := stored - int64(c.warningToken)
	return math.Nextafter(1.0/(float64(aboveToken)*c.slope+1.0/c.threshold), math.MaxFloat64)
}

func (c *warmUpCalculator) syncToken(previousQps float64) {
	now := util.CurrentTimeMillis()
	now -= now % 1000

	last := c.lastFilledTime.Load()
	if now <= last {
		return
	}

	old := c.storedTokens.Load()
	refilled := c.coolDownTokens(now, last, old, previousQps)
	if c.storedTokens.CompareAndSwap(old, refilled) {
		if cur := c.storedTokens.Add(int64(-previousQps)); cur < 0 {
			c.storedTokens.Store(0)
		}
		c.lastFilledTime.Store(now)
	}
}

func (c *warmUpCalculator) coolDownTokens(now, last uint64, old int64, previousQps float64) int64 {
	newValue := old
	switch {
	case old < int64(c.warningToken):
		newValue = old + int64(float64(now-last)*c.threshold/1000.0)
	case old > int64(c.warningToken):
		if previousQps < float64(c.threshold)/float64(c.coldFactor) {
			newValue = old + int64(float64(now-last)*c.threshold/1000.0)
		}
	}
	if newValue > int64(c.maxToken) {
		return int64(c.maxToken)
	}
	return newValue
}
