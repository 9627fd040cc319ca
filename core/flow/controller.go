package flow

import "github.com/Sunshine-Research/Sentinel/core/base"

// TrafficShapingCalculator derives the currently-allowed rate from a
// rule and the node's own history — constant for the default and
// rate-limiter controllers, dynamic for warm-up (spec.md §4.3).
type TrafficShapingCalculator interface {
	CalculateAllowedTokens(node base.StatNode, acquireCount uint32) float64
}

// TrafficShapingChecker decides admission given the node, the requested
// count and the calculator's threshold (spec.md §4.3).
type TrafficShapingChecker interface {
	DoCheck(node base.StatNode, acquireCount uint32, threshold float64, rule *Rule, prioritized bool) *base.TokenResult
}

// TrafficShapingController binds one rule to the calculator/checker pair
// that implements its ControlBehavior (spec.md §4.3).
type TrafficShapingController struct {
	rule       *Rule
	calculator TrafficShapingCalculator
	checker    TrafficShapingChecker
}

func (c *TrafficShapingController) BoundRule() *Rule { return c.rule }

func (c *TrafficShapingController) PerformChecking(node base.StatNode, acquireCount uint32, prioritized bool) *base.TokenResult {
	threshold := c.calculator.CalculateAllowedTokens(node, acquireCount)
	return c.checker.DoCheck(node, acquireCount, threshold, c.rule, prioritized)
}

func newController(rule *Rule) *TrafficShapingController {
	c := &TrafficShapingController{rule: rule}
	switch rule.ControlBehavior {
	case ControlWarmUp:
		c.calculator = newWarmUpCalculator(rule)
		c.checker = &rejectChecker{}
	case ControlRateLimiter:
		c.calculator = &directCalculator{threshold: rule.Threshold}
		c.checker = newThrottlingChecker(rule)
	case ControlWarmUpRateLimiter:
		wc := newWarmUpCalculator(rule)
		c.calculator = wc
		c.checker = newThrottlingChecker(rule)
	default:
		c.calculator = &directCalculator{threshold: rule.Threshold}
		c.checker = &rejectChecker{}
	}
	return c
}
