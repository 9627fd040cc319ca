package stat

import (
	"sync"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/config"
	"github.com/Sunshine-Research/Sentinel/logging"
)

var (
	inboundNode = NewStatisticNode()

	clusterMu   sync.RWMutex
	clusterMap  = make(map[string]*ClusterNode)

	defaultMu  sync.RWMutex
	defaultMap = make(map[string]*DefaultNode)

	entranceMu  sync.RWMutex
	entranceMap = make(map[string]*EntranceNode)
)

// InboundNode is the single global node every INBOUND resource's traffic
// is also folded into (spec.md §3, "global inbound node").
func InboundNode() *StatisticNode { return inboundNode }

func GetOrCreateClusterNode(resourceName string, resourceType base.ResourceType) *ClusterNode {
	clusterMu.RLock()
	node := clusterMap[resourceName]
	clusterMu.RUnlock()
	if node != nil {
		return node
	}

	clusterMu.Lock()
	defer clusterMu.Unlock()
	if node = clusterMap[resourceName]; node != nil {
		return node
	}
	if uint32(len(clusterMap)) >= config.MaxResourceAmount() {
		logging.Warnf("sentinel: resource amount exceeds the threshold %d", config.MaxResourceAmount())
	}
	node = NewClusterNode(resourceName, resourceType)
	clusterMap[resourceName] = node
	return node
}

func defaultNodeKey(resourceName, contextName string) string {
	return contextName + "\x00" + resourceName
}

// GetOrCreateDefaultNode returns the per-(resource, context) node,
// creating its ClusterNode as a side effect if it does not exist yet
// (spec.md §4.2, "NodeSelector").
func GetOrCreateDefaultNode(resourceName, contextName string, resourceType base.ResourceType) *DefaultNode {
	key := defaultNodeKey(resourceName, contextName)
	defaultMu.RLock()
	node := defaultMap[key]
	defaultMu.RUnlock()
	if node != nil {
		return node
	}

	cluster := GetOrCreateClusterNode(resourceName, resourceType)

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if node = defaultMap[key]; node != nil {
		return node
	}
	node = NewDefaultNode(resourceName, resourceType, cluster)
	defaultMap[key] = node
	return node
}

func GetOrCreateEntranceNode(contextName string) *EntranceNode {
	entranceMu.RLock()
	node := entranceMap[contextName]
	entranceMu.RUnlock()
	if node != nil {
		return node
	}

	entranceMu.Lock()
	defer entranceMu.Unlock()
	if node = entranceMap[contextName]; node != nil {
		return node
	}
	node = NewEntranceNode(contextName)
	entranceMap[contextName] = node
	return node
}

// EntranceNodeCount reports how many distinct named contexts have been
// seen; api uses it against config.MaxContextAmount to decide whether a
// brand-new context name gets the shared null-context instead
// (spec.md §3, "the count of live named contexts").
func EntranceNodeCount() int {
	entranceMu.RLock()
	defer entranceMu.RUnlock()
	return len(entranceMap)
}

func HasEntranceNode(contextName string) bool {
	entranceMu.RLock()
	defer entranceMu.RUnlock()
	_, ok := entranceMap[contextName]
	return ok
}

func GetClusterNode(resourceName string) *ClusterNode {
	clusterMu.RLock()
	defer clusterMu.RUnlock()
	return clusterMap[resourceName]
}

// ResetForTest clears every registry; it exists for package tests that
// need a pristine global state between cases.
func ResetForTest() {
	clusterMu.Lock()
	clusterMap = make(map[string]*ClusterNode)
	clusterMu.Unlock()

	defaultMu.Lock()
	defaultMap = make(map[string]*DefaultNode)
	defaultMu.Unlock()

	entranceMu.Lock()
	entranceMap = make(map[string]*EntranceNode)
	entranceMu.Unlock()

	inboundNode = NewStatisticNode()
}
