package stat

import (
	"sync"

	"github.com/Sunshine-Research/Sentinel/core/base"
)

// ClusterNode is the single process-wide aggregate for a resource,
// shared by every DefaultNode that serves it (spec.md §3, "ClusterNode";
// §4.3, the "direct" flow strategy reads an origin's breakdown off of
// it). The per-origin map is copy-on-write-ish in spirit: reads never
// block writers for long, and origins are created lazily and never
// removed, matching the bounded, slowly-growing cardinality of caller
// identities in practice.
type ClusterNode struct {
	StatisticNode

	resourceName string
	resourceType base.ResourceType

	originMu   sync.RWMutex
	originNode map[string]*StatisticNode
}

func NewClusterNode(resourceName string, resourceType base.ResourceType) *ClusterNode {
	return &ClusterNode{
		StatisticNode: *NewStatisticNode(),
		resourceName:  resourceName,
		resourceType:  resourceType,
		originNode:    make(map[string]*StatisticNode),
	}
}

func (n *ClusterNode) ResourceName() string            { return n.resourceName }
func (n *ClusterNode) ResourceType() base.ResourceType { return n.resourceType }

// OriginNode returns (creating if necessary) the breakdown node for a
// specific caller origin (spec.md §4.3, "per-origin counters").
func (n *ClusterNode) OriginNode(origin string) *StatisticNode {
	if origin == "" {
		return nil
	}
	n.originMu.RLock()
	node := n.originNode[origin]
	n.originMu.RUnlock()
	if node != nil {
		return node
	}

	n.originMu.Lock()
	defer n.originMu.Unlock()
	if node = n.originNode[origin]; node != nil {
		return node
	}
	node = NewStatisticNode()
	n.originNode[origin] = node
	return node
}

// OriginCount returns the number of distinct origins observed so far.
func (n *ClusterNode) OriginCount() int {
	n.originMu.RLock()
	defer n.originMu.RUnlock()
	return len(n.originNode)
}
