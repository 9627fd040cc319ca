package base

import (
	"sort"
	"sync"

	"github.com/Sunshine-Research/Sentinel/logging"
	"github.com/Sunshine-Research/Sentinel/util"
)

// SlotChain is the ordered pipeline every resource entry runs through:
// StatPrepareSlots front-to-back, then RuleCheckSlots front-to-back until
// one blocks, then StatSlots front-to-back to record the outcome
// (spec.md §4.2). One SlotChain is shared by every entry for a given
// resource; the resource-level registry that owns it lives in the api
// package, which also enforces the chain-count ceiling (spec.md §9).
type SlotChain struct {
	mu sync.RWMutex

	prepareSlots []StatPrepareSlot
	checkSlots   []RuleCheckSlot
	statSlots    []StatSlot
}

func NewSlotChain() *SlotChain {
	return &SlotChain{}
}

func (sc *SlotChain) AddStatPrepareSlot(s StatPrepareSlot) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.prepareSlots = append(sc.prepareSlots, s)
	sort.SliceStable(sc.prepareSlots, func(i, j int) bool { return sc.prepareSlots[i].Order() < sc.prepareSlots[j].Order() })
}

func (sc *SlotChain) AddRuleCheckSlot(s RuleCheckSlot) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.checkSlots = append(sc.checkSlots, s)
	sort.SliceStable(sc.checkSlots, func(i, j int) bool { return sc.checkSlots[i].Order() < sc.checkSlots[j].Order() })
}

func (sc *SlotChain) AddStatSlot(s StatSlot) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.statSlots = append(sc.statSlots, s)
	sort.SliceStable(sc.statSlots, func(i, j int) bool { return sc.statSlots[i].Order() < sc.statSlots[j].Order() })
}

// Entry runs one call through the chain. It never panics: a panicking
// slot is logged and treated as if it had passed the call (spec.md §7,
// "a panicking slot must not take down the caller"). On a pass, entry is
// pushed onto ctx's entry stack; on a block, it is not — the caller has
// nothing to Exit.
func (sc *SlotChain) Entry(ctx *EntryContext, resource *ResourceWrapper, input *Input) (*Entry, *TokenResult) {
	if input == nil {
		input = &Input{BatchCount: 1}
	}
	if ctx.IsNull {
		return NewEntry(ctx, resource, input), ResultPass()
	}

	entry := NewEntry(ctx, resource, input)

	sc.mu.RLock()
	prepareSlots := sc.prepareSlots
	checkSlots := sc.checkSlots
	statSlots := sc.statSlots
	sc.mu.RUnlock()

	for _, s := range prepareSlots {
		slot := s
		util.RunWithRecover(func() { slot.Prepare(ctx, entry) }, func(r interface{}) {
			logging.Errorf("panic in prepare slot %s for resource %s: %v", slot.Name(), resource.Name(), r)
		})
	}

	var result *TokenResult
	for _, s := range checkSlots {
		slot := s
		util.RunWithRecover(func() { result = slot.Check(ctx, entry) }, func(r interface{}) {
			logging.Errorf("panic in rule check slot %s for resource %s: %v", slot.Name(), resource.Name(), r)
			result = ResultPass()
		})
		if result.IsBlocked() {
			for _, st := range statSlots {
				stat := st
				util.RunWithRecover(func() { stat.OnEntryBlocked(ctx, entry, result.BlockError()) }, func(r interface{}) {
					logging.Errorf("panic in stat slot %s (blocked) for resource %s: %v", stat.Name(), resource.Name(), r)
				})
			}
			return entry, result
		}
		if result.IsShouldWait() {
			break
		}
	}

	ctx.setCurEntry(entry)
	for _, st := range statSlots {
		stat := st
		util.RunWithRecover(func() { stat.OnEntryPassed(ctx, entry) }, func(r interface{}) {
			logging.Errorf("panic in stat slot %s (passed) for resource %s: %v", stat.Name(), resource.Name(), r)
		})
	}
	if result == nil {
		result = ResultPass()
	}
	return entry, result
}

// Exit pops entry off its context's entry stack and runs OnCompleted for
// every StatSlot. Exiting out of LIFO order (spec.md §7, fault class 3)
// is a caller bug: Exit unwinds every descendant entry still above
// entry on the stack, logging each as a fault, before completing entry
// itself, so one missed Exit cannot wedge the rest of the call tree.
func (sc *SlotChain) Exit(entry *Entry) {
	if entry == nil || entry.exited {
		return
	}
	ctx := entry.ctx
	if ctx == nil {
		return
	}

	for cur := ctx.CurEntry(); cur != nil && cur != entry; cur = ctx.CurEntry() {
		logging.Errorf("sentinel: entry for resource %s exited out of order, force-unwinding descendant %s", entry.resource.Name(), cur.resource.Name())
		cur.exited = true
		ctx.setCurEntry(cur.parent)
	}

	entry.exited = true
	ctx.setCurEntry(entry.parent)

	sc.mu.RLock()
	statSlots := sc.statSlots
	sc.mu.RUnlock()

	for _, st := range statSlots {
		stat := st
		util.RunWithRecover(func() { stat.OnCompleted(ctx, entry) }, func(r interface{}) {
			logging.Errorf("panic in stat slot %s (completed) for resource %s: %v", stat.Name(), entry.resource.Name(), r)
		})
	}
}
