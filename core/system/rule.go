package system

import (
	"encoding/json"
	"fmt"
)

// MetricType is which global gauge a system rule caps (spec.md §4.6,
// "System").
type MetricType int32

const (
	MetricInboundQPS MetricType = iota
	MetricConcurrency
	MetricAvgRT
	MetricLoad
	MetricCPUUsage
)

// Rule caps one global gauge; TriggerCount is the threshold. Multiple
// rules of different MetricType compose: any breach blocks (spec.md
// §4.6, "any breach blocks").
type Rule struct {
	ID           string     `json:"id,omitempty"`
	MetricType   MetricType `json:"metricType"`
	TriggerCount float64    `json:"triggerCount"`
}

func (r *Rule) ResourceName() string { return "system" }

func (r *Rule) String() string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf("Rule{MetricType=%d, TriggerCount=%.2f}", r.MetricType, r.TriggerCount)
	}
	return string(b)
}

func isValid(rule *Rule) error {
	if rule == nil {
		return fmt.Errorf("nil system rule")
	}
	if rule.TriggerCount < 0 {
		return fmt.Errorf("negative triggerCount")
	}
	return nil
}
