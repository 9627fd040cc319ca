package system

import (
	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/stat"
	"github.com/Sunshine-Research/Sentinel/core/system_metric"
)

const (
	SlotName  = "sentinel-core-system-slot"
	SlotOrder = 1500
)

// Slot is the System RuleCheckSlot (spec.md §4.2, §4.6): a global guard
// evaluated only for INBOUND entries, checked in a fixed order — total
// thread count, total avg RT, total inbound QPS, global load, global
// CPU usage — against the shared inbound node. It runs ahead of Flow
// (order 2000) so a global overload sheds traffic before any per-rule
// shaping bothers to run.
type Slot struct{}

func (s *Slot) Name() string  { return SlotName }
func (s *Slot) Order() uint32 { return SlotOrder }

func (s *Slot) Check(ctx *base.EntryContext, entry *base.Entry) *base.TokenResult {
	if entry.Resource().FlowType() != base.Inbound {
		return base.ResultPass()
	}

	inbound := stat.InboundNode()

	if rule := ruleFor(MetricConcurrency); rule != nil {
		if n := float64(inbound.CurrentConcurrency()); n > rule.TriggerCount {
			return blocked(rule, n)
		}
	}
	if rule := ruleFor(MetricAvgRT); rule != nil {
		if rt := inbound.AvgRT(); rt > rule.TriggerCount {
			return blocked(rule, rt)
		}
	}
	if rule := ruleFor(MetricInboundQPS); rule != nil {
		if qps := inbound.GetQPS(base.MetricEventPass); qps > rule.TriggerCount {
			return blocked(rule, qps)
		}
	}
	if rule := ruleFor(MetricLoad); rule != nil {
		if l := system_metric.CurrentLoad(); l > rule.TriggerCount {
			return blocked(rule, l)
		}
	}
	if rule := ruleFor(MetricCPUUsage); rule != nil {
		if c := system_metric.CurrentCPUUsage(); c > rule.TriggerCount {
			return blocked(rule, c)
		}
	}

	return base.ResultPass()
}

func blocked(rule *Rule, observed float64) *base.TokenResult {
	return base.ResultBlocked(base.NewBlockErrorWithCause(
		base.BlockTypeSystemFlow, "system", "system guard triggered", rule, observed))
}
