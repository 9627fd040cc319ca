package stat

import "github.com/Sunshine-Research/Sentinel/core/base"

const (
	NodeSelectorSlotName  = "sentinel-core-node-selector-slot"
	NodeSelectorSlotOrder = 1000

	ClusterBuilderSlotName  = "sentinel-core-cluster-builder-slot"
	ClusterBuilderSlotOrder = 2000
)

// NodeSelectorSlot attaches the per-(resource, context) DefaultNode to
// the entry (spec.md §4.2, "NodeSelector"). It runs first among the
// prepare slots so every later slot can assume entry.CurNode is set.
type NodeSelectorSlot struct{}

func (s *NodeSelectorSlot) Name() string  { return NodeSelectorSlotName }
func (s *NodeSelectorSlot) Order() uint32 { return NodeSelectorSlotOrder }

func (s *NodeSelectorSlot) Prepare(ctx *base.EntryContext, entry *base.Entry) {
	node := GetOrCreateDefaultNode(entry.Resource().Name(), ctx.Name, entry.Resource().Classification())
	entry.CurNode = node
}

// ClusterBuilderSlot attaches the resource-wide ClusterNode and, when
// the context carries a caller origin, that origin's breakdown node
// (spec.md §4.2, "ClusterBuilder"; §4.3, the "direct" flow strategy).
type ClusterBuilderSlot struct{}

func (s *ClusterBuilderSlot) Name() string  { return ClusterBuilderSlotName }
func (s *ClusterBuilderSlot) Order() uint32 { return ClusterBuilderSlotOrder }

func (s *ClusterBuilderSlot) Prepare(ctx *base.EntryContext, entry *base.Entry) {
	cluster := GetOrCreateClusterNode(entry.Resource().Name(), entry.Resource().Classification())
	entry.ClusterNode = cluster
	if ctx.Origin != "" {
		entry.OriginNode = cluster.OriginNode(ctx.Origin)
	}
}
