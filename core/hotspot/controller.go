package hotspot

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/Sunshine-Research/Sentinel/core/base"
)

// Controller evaluates one hot-parameter rule against the argument
// selected by ParamIndex (spec.md §4.5).
type Controller struct {
	rule     *Rule
	metric   *paramMetric
	capacity int64
}

func newController(rule *Rule) *Controller {
	c := &Controller{rule: rule, metric: newParamMetric(rule.DurationInSec)}
	if rule.MetricType == MetricQPS {
		c.capacity = rule.Threshold + rule.BurstCount
	}
	return c
}

func (c *Controller) BoundRule() *Rule { return c.rule }

// resolveIndex turns a possibly-negative ParamIndex into a position in
// args, per spec.md §4.5 ("if negative, map to argc+paramIdx; if still
// out of range, disable the rule"). It never mutates the rule.
func (c *Controller) resolveIndex(argc int) (int, bool) {
	idx := c.rule.ParamIndex
	if idx < 0 {
		idx = argc + idx
	}
	if idx < 0 || idx >= argc {
		return 0, false
	}
	return idx, true
}

// Check evaluates the argument at the rule's ParamIndex. A sequence
// argument is checked element by element, failing fast on the first
// rejected element (spec.md §4.5).
func (c *Controller) Check(entry *base.Entry) *base.TokenResult {
	input := entry.Input()
	if input == nil || len(input.Args) == 0 {
		return base.ResultPass()
	}
	idx, ok := c.resolveIndex(len(input.Args))
	if !ok {
		return base.ResultPass()
	}

	arg := input.Args[idx]
	count := int64(1)
	if input.BatchCount > 0 {
		count = int64(input.BatchCount)
	}

	values := flatten(arg)
	for _, v := range values {
		if result := c.checkValue(v, count); result.IsBlocked() {
			return result
		}
	}
	return base.ResultPass()
}

func (c *Controller) checkValue(arg interface{}, count int64) *base.TokenResult {
	key := paramKey(arg)
	raw := fmt.Sprint(arg)
	threshold := c.rule.Threshold
	capacity := c.capacity
	if override, ok := c.rule.specificThreshold(raw); ok {
		threshold = override
		if c.rule.MetricType == MetricQPS {
			capacity = override + c.rule.BurstCount
		}
	}

	switch c.rule.MetricType {
	case MetricConcurrency:
		return c.checkConcurrency(key, threshold, count)
	default:
		return c.checkQPS(key, threshold, capacity, count)
	}
}

func (c *Controller) checkConcurrency(key string, threshold, count int64) *base.TokenResult {
	if c.metric.threadCount(key)+count <= threshold {
		return base.ResultPass()
	}
	return base.ResultBlocked(base.NewBlockErrorWithCause(
		base.BlockTypeHotSpotParamFlow, c.rule.Resource, "hot param concurrency exceeded", c.rule, key))
}

func (c *Controller) checkQPS(key string, threshold, capacity, count int64) *base.TokenResult {
	switch c.rule.ControlBehavior {
	case ControlThrottling:
		wait, ok := c.metric.tryPassLeaky(key, count, threshold, c.rule.MaxQueueingTimeMs)
		if !ok {
			return base.ResultBlocked(base.NewBlockErrorWithCause(
				base.BlockTypeHotSpotParamFlow, c.rule.Resource, "hot param throttling blocked", c.rule, key))
		}
		if wait > 0 {
			return base.ResultShouldWait(time.Duration(wait) * time.Millisecond)
		}
		return base.ResultPass()
	default:
		durationMs := c.rule.DurationInSec * 1000
		if c.metric.tryConsumeToken(key, count, capacity, threshold, durationMs) {
			return base.ResultPass()
		}
		return base.ResultBlocked(base.NewBlockErrorWithCause(
			base.BlockTypeHotSpotParamFlow, c.rule.Resource, "hot param token bucket exhausted", c.rule, key))
	}
}

// flatten expands a sequence/array argument into its elements so each
// can be checked independently (spec.md §4.5); a scalar argument
// flattens to a single-element slice.
func flatten(arg interface{}) []interface{} {
	v := reflect.ValueOf(arg)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = v.Index(i).Interface()
		}
		return out
	default:
		return []interface{}{arg}
	}
}

func paramKey(arg interface{}) string {
	h := xxhash.New()
	fmt.Fprint(h, arg)
	return strconv.FormatUint(h.Sum64(), 36)
}
