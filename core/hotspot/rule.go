package hotspot

import (
	"encoding/json"
	"fmt"
)

// MetricType selects what a hot-parameter rule counts: request volume
// (QPS) or live concurrency (spec.md §4.5, "Hot-key parameter flow").
type MetricType int32

const (
	MetricQPS MetricType = iota
	MetricConcurrency
)

// ControlBehavior mirrors the flow package's reject/throttling split,
// scoped per parameter value rather than per resource.
type ControlBehavior int32

const (
	ControlReject ControlBehavior = iota
	ControlThrottling
)

// ParamItem carries a per-value override: a specific argument value
// gets its own threshold instead of the rule's general one (spec.md
// §4.5, "paramFlowItemList").
type ParamItem struct {
	ClassType string `json:"classType"`
	RawValue  string `json:"value"`
	Threshold int64  `json:"threshold"`
}

// Rule is a hot-parameter flow control rule (spec.md §3 "ParamFlowRule",
// §4.5). ParamIndex selects which positional argument of the call is
// the hot key; a negative index counts back from the end of the argument
// list, and an index still out of range skips the check for that call
// without mutating the rule (Controller.resolveIndex).
type Rule struct {
	ID                string          `json:"id,omitempty"`
	Resource          string          `json:"resource"`
	MetricType        MetricType      `json:"metricType"`
	ControlBehavior   ControlBehavior `json:"controlBehavior"`
	ParamIndex        int             `json:"paramIndex"`
	Threshold         int64           `json:"threshold"`
	MaxQueueingTimeMs int64           `json:"maxQueueingTimeMs"`
	BurstCount        int64           `json:"burstCount"`
	DurationInSec     int64           `json:"durationInSec"`
	ParamFlowItemList []ParamItem     `json:"paramFlowItemList,omitempty"`
}

func (r *Rule) ResourceName() string { return r.Resource }

func (r *Rule) String() string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf("Rule{Resource=%s, ParamIndex=%d, Threshold=%d}", r.Resource, r.ParamIndex, r.Threshold)
	}
	return string(b)
}

func isValid(rule *Rule) error {
	if rule == nil {
		return fmt.Errorf("nil hotspot rule")
	}
	if rule.Resource == "" {
		return fmt.Errorf("empty resource")
	}
	if rule.Threshold < 0 {
		return fmt.Errorf("negative threshold")
	}
	if rule.MetricType == MetricQPS && rule.DurationInSec <= 0 {
		return fmt.Errorf("qps-grade rule requires durationInSec > 0")
	}
	return nil
}

// specificThreshold returns the per-value override for arg, if any, and
// whether one was configured.
func (r *Rule) specificThreshold(arg string) (int64, bool) {
	for _, item := range r.ParamFlowItemList {
		if item.RawValue == arg {
			return item.Threshold, true
		}
	}
	return 0, false
}
