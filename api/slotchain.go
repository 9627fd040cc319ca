package api

import (
	"sync"

	"github.com/Sunshine-Research/Sentinel/core/authority"
	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/circuitbreaker"
	"github.com/Sunshine-Research/Sentinel/core/config"
	"github.com/Sunshine-Research/Sentinel/core/flow"
	"github.com/Sunshine-Research/Sentinel/core/hotspot"
	"github.com/Sunshine-Research/Sentinel/core/stat"
	"github.com/Sunshine-Research/Sentinel/core/system"
	"github.com/Sunshine-Research/Sentinel/logging"
)

var (
	chainMu sync.RWMutex
	chains  = make(map[string]*base.SlotChain)
)

// newSlotChain wires the default pipeline every resource gets: the two
// StatPrepareSlots that attach nodes to the entry, the rule checkers in
// their fixed order (Authority, System, Flow, Degrade, HotSpot), and the
// StatSlots that fold the outcome back into those nodes (spec.md §4.2).
func newSlotChain() *base.SlotChain {
	sc := base.NewSlotChain()

	sc.AddStatPrepareSlot(&stat.NodeSelectorSlot{})
	sc.AddStatPrepareSlot(&stat.ClusterBuilderSlot{})

	sc.AddRuleCheckSlot(&authority.Slot{})
	sc.AddRuleCheckSlot(&system.Slot{})
	sc.AddRuleCheckSlot(&flow.Slot{})
	sc.AddRuleCheckSlot(&circuitbreaker.Slot{})
	sc.AddRuleCheckSlot(&hotspot.Slot{})

	sc.AddStatSlot(&stat.StatisticSlot{})
	sc.AddStatSlot(&hotspot.ConcurrencyStatSlot{})

	return sc
}

// slotChainFor returns the shared SlotChain for resourceName, creating
// it under a one-time double-checked install the first time the
// resource is seen (spec.md §4.2, "per-resource slot-chain creation
// requires a one-time double-checked install"). Past
// DefaultSlotChainMaxResourceAmount distinct resources, new ones get
// the shared no-protection overflow chain instead of growing the
// registry unbounded.
func slotChainFor(resourceName string) *base.SlotChain {
	chainMu.RLock()
	sc := chains[resourceName]
	chainMu.RUnlock()
	if sc != nil {
		return sc
	}

	chainMu.Lock()
	defer chainMu.Unlock()
	if sc = chains[resourceName]; sc != nil {
		return sc
	}
	if uint32(len(chains)) >= config.DefaultSlotChainMaxResourceAmount {
		logging.Warnf("sentinel: distinct resource amount exceeds slot-chain cap %d, resource %s bypasses the chain (no protection)",
			config.DefaultSlotChainMaxResourceAmount, resourceName)
		return overflowChain()
	}
	sc = newSlotChain()
	chains[resourceName] = sc
	return sc
}

// overflowChain is the chain every resource past
// DefaultSlotChainMaxResourceAmount shares: no StatPrepareSlots, no
// RuleCheckSlots, no StatSlots (spec.md §4.2, "bypass the chain (no
// protection)"). Unlike the per-resource chains newSlotChain builds,
// this one must stay empty — every slot resolves its state from a
// global resource-name-keyed registry rather than chain-local state, so
// wiring the normal rule checkers here would give overflow resources
// the exact same protection as resources under the cap, defeating the
// point of having a cap at all.
var (
	overflowOnce sync.Once
	overflow     *base.SlotChain
)

func overflowChain() *base.SlotChain {
	overflowOnce.Do(func() { overflow = base.NewSlotChain() })
	return overflow
}
