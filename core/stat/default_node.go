package stat

import "github.com/Sunshine-Research/Sentinel/core/base"

// DefaultNode is the per (resource, calling context) statistics node
// (spec.md §3, "DefaultNode"). Every context that enters the same
// resource gets its own DefaultNode, so a dashboard can break traffic
// down by which call path drove it, while ClusterNode aggregates across
// all of them.
type DefaultNode struct {
	StatisticNode

	resourceName string
	resourceType base.ResourceType
	clusterNode  *ClusterNode
}

func NewDefaultNode(resourceName string, resourceType base.ResourceType, clusterNode *ClusterNode) *DefaultNode {
	return &DefaultNode{
		StatisticNode: *NewStatisticNode(),
		resourceName:  resourceName,
		resourceType:  resourceType,
		clusterNode:   clusterNode,
	}
}

func (n *DefaultNode) ResourceName() string          { return n.resourceName }
func (n *DefaultNode) ResourceType() base.ResourceType { return n.resourceType }
func (n *DefaultNode) ClusterNode() *ClusterNode     { return n.clusterNode }
