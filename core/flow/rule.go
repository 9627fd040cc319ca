package flow

import (
	"encoding/json"
	"fmt"

	"github.com/Sunshine-Research/Sentinel/core/config"
)

// RelationStrategy picks which statistics node a flow rule reads
// (spec.md §4.3, the limitApp/strategy/origin table).
type RelationStrategy int32

const (
	Direct RelationStrategy = iota
	Relate
	Chain
)

func (s RelationStrategy) String() string {
	switch s {
	case Direct:
		return "direct"
	case Relate:
		return "relate"
	case Chain:
		return "chain"
	default:
		return "undefined"
	}
}

// Grade picks which live quantity a rule's threshold bounds (spec.md
// §3, "grade"): concurrent thread count, or admitted QPS.
type Grade int32

const (
	GradeThread Grade = iota
	GradeQPS
)

func (g Grade) String() string {
	if g == GradeThread {
		return "thread"
	}
	return "qps"
}

// ControlBehavior picks the shaping controller (spec.md §4.3).
type ControlBehavior int32

const (
	ControlDefault ControlBehavior = iota
	ControlWarmUp
	ControlRateLimiter
	ControlWarmUpRateLimiter
)

func (b ControlBehavior) String() string {
	switch b {
	case ControlDefault:
		return "default"
	case ControlWarmUp:
		return "warmUp"
	case ControlRateLimiter:
		return "rateLimiter"
	case ControlWarmUpRateLimiter:
		return "warmUp+rateLimiter"
	default:
		return "undefined"
	}
}

// ClusterConfig marks a rule as cluster-mode: token acquisition is
// delegated to a cluster.TokenService keyed by FlowID rather than
// decided from local statistics (spec.md §4.7).
type ClusterConfig struct {
	Enabled       bool   `json:"enabled"`
	FlowID        string `json:"flowId"`
	FallbackToLocal bool `json:"fallbackToLocalWhenFail"`
}

// Rule is a flow-control rule (spec.md §3, "FlowRule"). LimitApp is
// "default" (applies to every origin), "other" (applies only
// to origins not explicitly configured elsewhere for this resource), or
// a caller identity matched exactly against context.Origin.
type Rule struct {
	ID                string           `json:"id,omitempty"`
	Resource          string           `json:"resource"`
	LimitApp          string           `json:"limitApp"`
	Grade             Grade            `json:"grade"`
	Strategy          RelationStrategy `json:"strategy"`
	RefResource       string           `json:"refResource"`
	ControlBehavior   ControlBehavior  `json:"controlBehavior"`
	Threshold         float64          `json:"threshold"`
	WarmUpPeriodSec   uint32           `json:"warmUpPeriodSec"`
	WarmUpColdFactor  uint32           `json:"warmUpColdFactor"`
	MaxQueueingTimeMs uint32           `json:"maxQueueingTimeMs"`
	Cluster           *ClusterConfig   `json:"cluster,omitempty"`
}

func (r *Rule) ResourceName() string { return r.Resource }

func (r *Rule) String() string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf("Rule{Resource=%s, LimitApp=%s, Strategy=%s, ControlBehavior=%s, Threshold=%.2f}",
			r.Resource, r.LimitApp, r.Strategy, r.ControlBehavior, r.Threshold)
	}
	return string(b)
}

func (r *Rule) isClusterMode() bool {
	return r.Cluster != nil && r.Cluster.Enabled
}

// occupyTimeoutMs bounds how long a prioritized caller may be told to
// wait, capped at the rule's statistic window length (spec.md §4.3,
// "default 500, capped at the window length").
func (r *Rule) occupyTimeoutMs() uint32 {
	timeout := config.DefaultOccupyTimeoutMs
	windowMs := config.MetricStatisticIntervalMs()
	if timeout > windowMs {
		timeout = windowMs
	}
	return timeout
}

func isValid(rule *Rule) error {
	if rule == nil {
		return fmt.Errorf("nil flow rule")
	}
	if rule.Resource == "" {
		return fmt.Errorf("empty resource")
	}
	if rule.Threshold < 0 {
		return fmt.Errorf("negative threshold")
	}
	if rule.Strategy == Relate || rule.Strategy == Chain {
		if rule.RefResource == "" {
			return fmt.Errorf("refResource must be set for strategy %s", rule.Strategy)
		}
	}
	if rule.ControlBehavior == ControlWarmUp || rule.ControlBehavior == ControlWarmUpRateLimiter {
		if rule.WarmUpPeriodSec == 0 {
			return fmt.Errorf("warmUpPeriodSec must be > 0 for control behavior %s", rule.ControlBehavior)
		}
	}
	return nil
}
