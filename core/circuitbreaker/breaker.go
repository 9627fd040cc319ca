package circuitbreaker

import (
	"sync/atomic"
	"time"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/logging"
)

// probationLimit is the count of consecutive over-threshold avgRT
// observations that trips a breaker: the first probationLimit-1 are
// admitted and the probationLimit-th trips it (spec.md §4.4,
// "five consecutive slow observations").
const probationLimit = 5

// Breaker evaluates one degrade rule against the cluster-wide node for
// its resource and opens the circuit once the rule's signal breaches
// threshold. It reuses the resource's existing ClusterNode statistics
// rather than keeping its own sliding window, since the node already
// tracks second- and minute-resolution counters (spec.md §4.4 only
// requires reading them, not a dedicated stat structure).
type Breaker struct {
	rule *Rule
	node base.StatNode

	cut       atomic.Bool
	probation atomic.Int32
}

func NewBreaker(rule *Rule, node base.StatNode) *Breaker {
	return &Breaker{rule: rule, node: node}
}

func (b *Breaker) BoundRule() *Rule { return b.rule }

// TryPass reports whether a call is admitted. A pass still lets the
// caller record its own outcome later; the breaker only reads back
// already-recorded node statistics, it does not hook OnCompleted.
func (b *Breaker) TryPass() *base.TokenResult {
	if b.cut.Load() {
		return base.ResultBlocked(base.NewBlockErrorWithCause(
			base.BlockTypeCircuitBreaking, b.rule.Resource, "circuit breaker open", b.rule, nil))
	}
	if b.node == nil {
		return base.ResultPass()
	}

	switch b.rule.Grade {
	case GradeAvgRT:
		return b.checkAvgRT()
	case GradeExceptionRatio:
		return b.checkExceptionRatio()
	case GradeExceptionCount:
		return b.checkExceptionCount()
	default:
		return base.ResultPass()
	}
}

func (b *Breaker) checkAvgRT() *base.TokenResult {
	avgRt := b.node.AvgRT()
	if avgRt < b.rule.Threshold {
		b.probation.Store(0)
		return base.ResultPass()
	}
	if n := b.probation.Add(1); n >= probationLimit {
		b.trip(avgRt)
		return base.ResultBlocked(base.NewBlockErrorWithCause(
			base.BlockTypeCircuitBreaking, b.rule.Resource, "avgRT degrade triggered", b.rule, avgRt))
	}
	return base.ResultPass()
}

func (b *Breaker) checkExceptionRatio() *base.TokenResult {
	t := b.node.GetQPS(base.MetricEventComplete)
	e := b.node.GetQPS(base.MetricEventError)
	s := t - e

	if t < 5 {
		return base.ResultPass()
	}
	if s-e <= 0 && e < 5 {
		return base.ResultPass()
	}
	ratio := e / s
	if ratio < b.rule.Threshold {
		return base.ResultPass()
	}
	b.trip(ratio)
	return base.ResultBlocked(base.NewBlockErrorWithCause(
		base.BlockTypeCircuitBreaking, b.rule.Resource, "exceptionRatio degrade triggered", b.rule, ratio))
}

func (b *Breaker) checkExceptionCount() *base.TokenResult {
	count := b.node.GetTotalSum(base.MetricEventError)
	if float64(count) < b.rule.Threshold {
		return base.ResultPass()
	}
	b.trip(count)
	return base.ResultBlocked(base.NewBlockErrorWithCause(
		base.BlockTypeCircuitBreaking, b.rule.Resource, "exceptionCount degrade triggered", b.rule, count))
}

func (b *Breaker) trip(observed interface{}) {
	if !b.cut.CompareAndSwap(false, true) {
		return
	}
	logging.Warnf("circuit breaker opened for resource %s (grade=%s, observed=%v)",
		b.rule.Resource, b.rule.Grade, observed)
	time.AfterFunc(time.Duration(b.rule.TimeWindowSec)*time.Second, b.reset)
}

func (b *Breaker) reset() {
	b.probation.Store(0)
	b.cut.Store(false)
}
