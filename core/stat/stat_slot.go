package stat

import (
	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/config"
)

const (
	StatisticSlotName  = "sentinel-core-statistic-slot"
	StatisticSlotOrder = 1000
)

// StatisticSlot is the core bookkeeping StatSlot (spec.md §4.2,
// "Statistic"): it folds the outcome of one call into every node the
// prepare phase attached to the entry, and into the global inbound node
// when the resource is on the inbound edge.
type StatisticSlot struct{}

func (s *StatisticSlot) Name() string  { return StatisticSlotName }
func (s *StatisticSlot) Order() uint32 { return StatisticSlotOrder }

func (s *StatisticSlot) nodesFor(entry *base.Entry) []base.StatNode {
	nodes := make([]base.StatNode, 0, 3)
	if entry.CurNode != nil {
		nodes = append(nodes, entry.CurNode)
	}
	if entry.ClusterNode != nil {
		nodes = append(nodes, entry.ClusterNode)
	}
	if entry.OriginNode != nil {
		nodes = append(nodes, entry.OriginNode)
	}
	return nodes
}

func (s *StatisticSlot) OnEntryPassed(ctx *base.EntryContext, entry *base.Entry) {
	count := int64(batchCount(entry))
	for _, n := range s.nodesFor(entry) {
		n.IncreaseConcurrency()
		n.AddCount(base.MetricEventPass, count)
	}
	if entry.Resource().FlowType() == base.Inbound {
		InboundNode().IncreaseConcurrency()
		InboundNode().AddCount(base.MetricEventPass, count)
	}
}

func (s *StatisticSlot) OnEntryBlocked(ctx *base.EntryContext, entry *base.Entry, blockErr *base.BlockError) {
	count := int64(batchCount(entry))
	for _, n := range s.nodesFor(entry) {
		n.AddCount(base.MetricEventBlock, count)
	}
	if entry.Resource().FlowType() == base.Inbound {
		InboundNode().AddCount(base.MetricEventBlock, count)
	}
}

func (s *StatisticSlot) OnCompleted(ctx *base.EntryContext, entry *base.Entry) {
	count := int64(batchCount(entry))
	rt := entry.RtMs()
	if rt > config.DefaultDropValveMs {
		rt = config.DefaultDropValveMs
	}
	isErr := base.ExceptionClassifierFor(entry.Resource().Name()).Traceable(entry.Err())

	for _, n := range s.nodesFor(entry) {
		recordComplete(n, count, rt, isErr)
	}
	if entry.Resource().FlowType() == base.Inbound {
		recordComplete(InboundNode(), count, rt, isErr)
	}
}

func recordComplete(n base.StatNode, count int64, rt uint64, isErr bool) {
	if isErr {
		n.AddCount(base.MetricEventError, count)
	}
	n.AddCount(base.MetricEventRt, int64(rt))
	n.AddCount(base.MetricEventComplete, count)
	n.DecreaseConcurrency()
}

func batchCount(entry *base.Entry) uint32 {
	if entry.Input() == nil || entry.Input().BatchCount == 0 {
		return 1
	}
	return entry.Input().BatchCount
}
